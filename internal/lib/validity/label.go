package validity

import "fmt"

// RemainingLabel текст для карточек дашборда.
func RemainingLabel(daysRemaining int) string {
	switch {
	case daysRemaining == 0:
		return "Vence hoy"
	case daysRemaining == 1:
		return "Vence mañana"
	case daysRemaining > 1:
		return fmt.Sprintf("Vence en %d días", daysRemaining)
	case daysRemaining == -1:
		return "Venció ayer"
	default:
		return fmt.Sprintf("Venció hace %d días", -daysRemaining)
	}
}

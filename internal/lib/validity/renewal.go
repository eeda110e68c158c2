package validity

import (
	"fmt"
	"time"
)

// RenewalInfo проекция продления контракта.
type RenewalInfo struct {
	PlacementDate         Date   `json:"placement_date"`
	CurrentExpirationDate Date   `json:"current_expiration_date"`
	CurrentDurationMonths int    `json:"current_duration_months"`
	RenewalDate           Date   `json:"renewal_date"`
	MonthsAdded           int    `json:"months_added"`
	NewExpirationDate     Date   `json:"new_expiration_date"`
	TotalMonths           int    `json:"total_months"`
	DaysRemaining         int    `json:"days_remaining"`
	MonthsRemaining       int    `json:"months_remaining"`
	IsExpired             bool   `json:"is_expired"`
	IsExpiringSoon        bool   `json:"is_expiring_soon"`
	Status                Status `json:"status"`
}

// Renewal продлевает контракт на monthsToAdd месяцев от текущей даты окончания.
// Остаток и флаги считаются по новой дате окончания.
func Renewal(currentExpiration Date, monthsToAdd int, placement Date, currentMonths int, now time.Time) (RenewalInfo, error) {
	if currentExpiration.IsZero() {
		return RenewalInfo{}, ErrInvalidExpirationDate
	}
	if monthsToAdd <= 0 {
		return RenewalInfo{}, fmt.Errorf("%w: months to add must be positive, got %d", ErrInvalidDuration, monthsToAdd)
	}
	if currentMonths < 0 {
		return RenewalInfo{}, fmt.Errorf("%w: negative months %d", ErrInvalidDuration, currentMonths)
	}

	newExpiration := currentExpiration.AddMonths(monthsToAdd)
	days := DaysRemaining(newExpiration, now)
	expired := IsExpired(days)

	return RenewalInfo{
		PlacementDate:         placement,
		CurrentExpirationDate: currentExpiration,
		CurrentDurationMonths: currentMonths,
		RenewalDate:           DateOf(now),
		MonthsAdded:           monthsToAdd,
		NewExpirationDate:     newExpiration,
		TotalMonths:           currentMonths + monthsToAdd,
		DaysRemaining:         days,
		MonthsRemaining:       MonthsRemaining(newExpiration, now),
		IsExpired:             expired,
		IsExpiringSoon:        IsExpiringSoon(days),
		Status:                Classify(days, expired),
	}, nil
}

// RenewalFromStrings то же для сырой длительности из API ("12 meses").
func RenewalFromStrings(currentExpiration Date, monthsToAdd int, placement Date, currentDuration string, now time.Time) (RenewalInfo, error) {
	months, err := ParseMonths(currentDuration)
	if err != nil {
		return RenewalInfo{}, err
	}
	return Renewal(currentExpiration, monthsToAdd, placement, months, now)
}

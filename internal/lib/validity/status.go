package validity

import (
	"encoding/json"
	"fmt"
)

// Status классификация контракта по оставшимся дням.
type Status int

// Статусы в порядке убывания срочности.
const (
	StatusExpired Status = iota
	StatusExpiringSoon
	StatusUpcoming
	StatusActive
)

// Severity семантический уровень для UI, который сам выбирает цвет.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityNotice  Severity = "notice"
	SeveritySuccess Severity = "success"
)

var statusCodes = map[Status]string{
	StatusExpired:      "expired",
	StatusExpiringSoon: "expiring_soon",
	StatusUpcoming:     "upcoming",
	StatusActive:       "active",
}

var statusLabels = map[Status]string{
	StatusExpired:      "Vencido",
	StatusExpiringSoon: "Por vencer",
	StatusUpcoming:     "Próximo a vencer",
	StatusActive:       "Vigente",
}

var statusSeverities = map[Status]Severity{
	StatusExpired:      SeverityDanger,
	StatusExpiringSoon: SeverityWarning,
	StatusUpcoming:     SeverityNotice,
	StatusActive:       SeveritySuccess,
}

// Statuses все статусы в порядке срочности.
func Statuses() []Status {
	return []Status{StatusExpired, StatusExpiringSoon, StatusUpcoming, StatusActive}
}

// Classify первое совпадение выигрывает: просрочен, <0 дней, <=30, <=90, иначе действует.
// День окончания (0) ещё не просрочен.
func Classify(daysRemaining int, isExpired bool) Status {
	switch {
	case isExpired:
		return StatusExpired
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining <= ExpiringSoonDays:
		return StatusExpiringSoon
	case daysRemaining <= UpcomingDays:
		return StatusUpcoming
	default:
		return StatusActive
	}
}

// ParseStatus разбирает машинный код статуса ("expired", "expiring_soon", ...).
func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes {
		if c == code {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", code)
}

// Code машинный код статуса.
func (s Status) Code() string {
	return statusCodes[s]
}

// Label подпись для пользователя.
func (s Status) Label() string {
	return statusLabels[s]
}

// Severity уровень для отображения.
func (s Status) Severity() Severity {
	return statusSeverities[s]
}

func (s Status) String() string {
	return s.Label()
}

type statusJSON struct {
	Code     string   `json:"code"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// MarshalJSON {"code":"expiring_soon","label":"Por vencer","severity":"warning"}.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusJSON{Code: s.Code(), Label: s.Label(), Severity: s.Severity()})
}

// UnmarshalJSON принимает объект, записанный MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var v statusJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseStatus(v.Code)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

package validity

import (
	"fmt"
	"math"
	"time"
)

// ExpiringSoonDays граница статуса "Por vencer" и флага IsExpiringSoon.
const ExpiringSoonDays = 30

// UpcomingDays граница статуса "Próximo a vencer".
const UpcomingDays = 90

// Info производные сведения о сроке контракта. Считаются заново при каждом вызове.
type Info struct {
	PlacementDate   Date   `json:"placement_date"`
	DurationMonths  int    `json:"duration_months"`
	ExpirationDate  Date   `json:"expiration_date"`
	DaysRemaining   int    `json:"days_remaining"`
	MonthsRemaining int    `json:"months_remaining"`
	IsExpired       bool   `json:"is_expired"`
	IsExpiringSoon  bool   `json:"is_expiring_soon"`
	Status          Status `json:"status"`
	RemainingLabel  string `json:"remaining_label"`
}

// ExpirationDate дата окончания: дата колокации плюс months календарных месяцев.
func ExpirationDate(placement Date, months int) (Date, error) {
	if placement.IsZero() {
		return Date{}, ErrInvalidPlacementDate
	}
	if months < 0 {
		return Date{}, fmt.Errorf("%w: negative months %d", ErrInvalidDuration, months)
	}
	return placement.AddMonths(months), nil
}

// ExpirationDateFromStrings то же самое для сырых значений из API.
func ExpirationDateFromStrings(placement, duration string) (Date, error) {
	date, err := ParseDate(placement)
	if err != nil {
		return Date{}, err
	}
	months, err := ParseMonths(duration)
	if err != nil {
		return Date{}, err
	}
	return ExpirationDate(date, months)
}

// DaysRemaining ceil((expiration - today) / 1 день). Отрицательное значение значит просрочку.
func DaysRemaining(expiration Date, now time.Time) int {
	today := DateOf(now)
	return int(math.Ceil(expiration.Sub(today.Time).Hours() / 24))
}

// MonthsRemaining грубая разница по номерам месяцев без учёта дня, не меньше нуля.
func MonthsRemaining(expiration Date, now time.Time) int {
	today := DateOf(now)
	months := (expiration.Year()-today.Year())*12 + int(expiration.Month()) - int(today.Month())
	if months < 0 {
		return 0
	}
	return months
}

// IsExpired единое правило просрочки для всего пакета.
func IsExpired(daysRemaining int) bool {
	return daysRemaining < 0
}

// IsExpiringSoon 0 <= daysRemaining <= 30.
func IsExpiringSoon(daysRemaining int) bool {
	return daysRemaining >= 0 && daysRemaining <= ExpiringSoonDays
}

// ContractValidity собирает Info по дате колокации и длительности.
func ContractValidity(placement Date, months int, now time.Time) (Info, error) {
	expiration, err := ExpirationDate(placement, months)
	if err != nil {
		return Info{}, err
	}
	return ValidityUntil(placement, months, expiration, now)
}

// ValidityUntil собирает Info для известной даты окончания. После продления
// она хранится отдельно и может не совпадать с placement + months.
func ValidityUntil(placement Date, months int, expiration Date, now time.Time) (Info, error) {
	if expiration.IsZero() {
		return Info{}, ErrInvalidExpirationDate
	}
	if months < 0 {
		return Info{}, fmt.Errorf("%w: negative months %d", ErrInvalidDuration, months)
	}
	days := DaysRemaining(expiration, now)
	expired := IsExpired(days)
	return Info{
		PlacementDate:   placement,
		DurationMonths:  months,
		ExpirationDate:  expiration,
		DaysRemaining:   days,
		MonthsRemaining: MonthsRemaining(expiration, now),
		IsExpired:       expired,
		IsExpiringSoon:  IsExpiringSoon(days),
		Status:          Classify(days, expired),
		RemainingLabel:  RemainingLabel(days),
	}, nil
}

package validity

import "time"

// Clock источник текущего времени.
type Clock func() time.Time

// Calculator связывает чистые функции пакета с часами.
type Calculator struct {
	now Clock
}

// NewCalculator создаёт калькулятор. nil означает time.Now.
func NewCalculator(now Clock) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{now: now}
}

// Now текущий момент по часам калькулятора.
func (c *Calculator) Now() time.Time {
	return c.now()
}

// Today сегодняшняя дата по UTC.
func (c *Calculator) Today() Date {
	return DateOf(c.now())
}

// Validity см. ContractValidity.
func (c *Calculator) Validity(placement Date, months int) (Info, error) {
	return ContractValidity(placement, months, c.now())
}

// Renewal см. Renewal.
func (c *Calculator) Renewal(currentExpiration Date, monthsToAdd int, placement Date, currentMonths int) (RenewalInfo, error) {
	return Renewal(currentExpiration, monthsToAdd, placement, currentMonths, c.now())
}

// ValidityUntil см. ValidityUntil.
func (c *Calculator) ValidityUntil(placement Date, months int, expiration Date) (Info, error) {
	return ValidityUntil(placement, months, expiration, c.now())
}

// Package validity считает сроки действия контрактов на мониторинг:
// дату окончания, оставшиеся дни и месяцы, статус и параметры продления.
//
// Все функции чистые: текущее время передаётся явно (или через Calculator
// с подменяемыми часами). Все даты нормализуются к полуночи по UTC.
package validity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout формат даты на границе с API: YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Date календарная дата без времени суток, всегда полночь UTC.
type Date struct {
	time.Time
}

// NewDate создаёт дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf отбрасывает время суток. Момент сначала переводится в UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate разбирает YYYY-MM-DD, допускается хвост со временем через 'T' или пробел.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty date", ErrInvalidPlacementDate)
	}
	head := s
	if len(s) > len(DateLayout) {
		if sep := s[len(DateLayout)]; sep != 'T' && sep != ' ' {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidPlacementDate, s)
		}
		head = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, head)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidPlacementDate, s)
	}
	return Date{t}, nil
}

// AddMonths прибавляет n месяцев. Если в целевом месяце нет такого дня,
// дата прижимается к последнему дню месяца: 31.01 + 1 = 29.02 (28.02).
func (d Date) AddMonths(n int) Date {
	y, m, day := d.Date()
	total := int(m) - 1 + n
	y += total / 12
	total %= 12
	if total < 0 {
		total += 12
		y--
	}
	target := time.Month(total + 1)
	if last := daysIn(y, target); day > last {
		day = last
	}
	return NewDate(y, target, day)
}

// Equal сравнивает только календарные даты.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON пишет дату строкой YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON принимает строку в формате ParseDate или null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPlacementDate, string(data))
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

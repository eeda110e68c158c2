package validity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseMonths извлекает первое максимальное вхождение ASCII-цифр:
// "12", " 12 meses", "Plazo: 6 (seis)" -> 12, 12, 6.
func ParseMonths(s string) (int, error) {
	start := strings.IndexFunc(s, isDigit)
	if start < 0 {
		return 0, fmt.Errorf("%w: no digits in %q", ErrInvalidDuration, s)
	}
	end := start
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return n, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Months длительность контракта в месяцах. В JSON приходит либо числом,
// либо строкой со свободным текстом вокруг числа.
type Months int

// UnmarshalJSON принимает 12, "12" и "12 meses".
func (m *Months) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Months(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, string(data))
	}
	n, err := ParseMonths(s)
	if err != nil {
		return err
	}
	*m = Months(n)
	return nil
}

// DurationText длительность как её прислал клиент. Число в JSON
// превращается в строку, строка сохраняется без изменений.
type DurationText string

// UnmarshalJSON принимает 12 и "12 meses".
func (d *DurationText) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DurationText(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, string(data))
	}
	*d = DurationText(s)
	return nil
}

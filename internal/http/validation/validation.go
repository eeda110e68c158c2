// Package validation настраивает валидатор входящих DTO.
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

// New валидатор с тегами placement_date, contract_duration и single_line.
func New() *validator.Validate {
	v := validator.New()
	// Ошибка возможна только при пустом имени тега.
	_ = v.RegisterValidation("placement_date", placementDate)
	_ = v.RegisterValidation("contract_duration", contractDuration)
	_ = v.RegisterValidation("single_line", singleLine)
	return v
}

func placementDate(fl validator.FieldLevel) bool {
	_, err := validity.ParseDate(fl.Field().String())
	return err == nil
}

func contractDuration(fl validator.FieldLevel) bool {
	months, err := validity.ParseMonths(fl.Field().String())
	return err == nil && months > 0
}

// singleLine запрещает управляющие символы: значение попадает в заголовки писем.
func singleLine(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsControl) < 0
}

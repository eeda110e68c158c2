package validity

import (
	"errors"
	"fmt"
	"strings"
)

// Сообщения валидатора показываются пользователю рядом с полем формы.
const (
	MsgPlacementRequired = "La fecha de colocación es requerida"
	MsgPlacementInvalid  = "La fecha de colocación no es válida"
	MsgDurationRequired  = "La duración del contrato es requerida"
	MsgDurationInvalid   = "La duración del contrato no es válida"
	MsgDurationPositive  = "La duración del contrato debe ser mayor a 0"
)

// ValidationResult результат проверки входных данных контракта.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
	// Field поле формы, к которому относится ошибка.
	Field string `json:"field,omitempty"`
	Err   error  `json:"-"`
}

// ValidationError превращает невалидный результат в error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AsError nil для валидного результата.
func (r ValidationResult) AsError() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{Field: r.Field, Message: r.Error, Err: r.Err}
}

// ValidateContractData единственная точка проверки перед расчётами.
// Остальные функции пакета входные данные повторно не проверяют.
func ValidateContractData(placementDate, duration string) ValidationResult {
	if strings.TrimSpace(placementDate) == "" {
		return invalid("placement_date", MsgPlacementRequired, ErrInvalidPlacementDate)
	}
	if _, err := ParseDate(placementDate); err != nil {
		return invalid("placement_date", MsgPlacementInvalid, err)
	}
	if strings.TrimSpace(duration) == "" {
		return invalid("contract_duration", MsgDurationRequired, ErrInvalidDuration)
	}
	months, err := ParseMonths(duration)
	if err != nil {
		return invalid("contract_duration", MsgDurationInvalid, err)
	}
	if months <= 0 {
		return invalid("contract_duration", MsgDurationPositive, ErrInvalidDuration)
	}
	return ValidationResult{IsValid: true}
}

// ValidateContract вариант для уже разобранных значений.
func ValidateContract(placement Date, months int) ValidationResult {
	if placement.IsZero() {
		return invalid("placement_date", MsgPlacementRequired, ErrInvalidPlacementDate)
	}
	if months <= 0 {
		return invalid("contract_duration", MsgDurationPositive, ErrInvalidDuration)
	}
	return ValidationResult{IsValid: true}
}

// IsValidationError true для ошибок, которые надо показывать как ошибки поля.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidPlacementDate) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidExpirationDate)
}

func invalid(field, msg string, err error) ValidationResult {
	return ValidationResult{IsValid: false, Error: msg, Field: field, Err: err}
}

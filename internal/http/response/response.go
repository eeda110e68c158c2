// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/storage"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status статус запроса ("OK" или "Error").
// Поле Error текст ошибки (опционально, при неуспехе).
// Поле Data данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации и ответов с ошибкой.
// Field заполняется, если ошибка относится к конкретному полю формы.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
	Field  string `json:"field,omitempty" example:"placement_date"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// FieldError ответ с ошибкой конкретного поля.
func FieldError(field, msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
		Field:  field,
	}
}

// FromError сопоставляет ошибку сервиса HTTP-статусу и телу ответа.
// Ошибки входных данных калькулятора дают 422, отсутствие контракта 404,
// всё остальное 500 с сообщением fallback.
func FromError(err error, fallback string) (int, ErrorResponse) {
	var ve *validity.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, FieldError(ve.Field, ve.Message)
	case errors.Is(err, validity.ErrInvalidPlacementDate):
		return http.StatusUnprocessableEntity, FieldError("placement_date", validity.MsgPlacementInvalid)
	case errors.Is(err, validity.ErrInvalidDuration):
		return http.StatusUnprocessableEntity, FieldError("contract_duration", validity.MsgDurationInvalid)
	case errors.Is(err, validity.ErrInvalidExpirationDate):
		return http.StatusUnprocessableEntity, Error("invalid expiration date")
	case errors.Is(err, storage.ErrContractNotFound):
		return http.StatusNotFound, Error("contract not found")
	default:
		return http.StatusInternalServerError, Error(fallback)
	}
}

// ValidationError формирует ответ на основе ошибок валидатора.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "single_line":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must not contain line breaks or control characters", err.Field()))
		case "gt", "lte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is out of range", err.Field()))
		case "placement_date":
			errsMsgs = append(errsMsgs, validity.MsgPlacementInvalid)
		case "contract_duration":
			errsMsgs = append(errsMsgs, validity.MsgDurationInvalid)
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// Package create реализует HTTP-обработчик регистрации нового контракта.
//
// Handler принимает JSON с данными контракта, проверяет его валидатором,
// передаёт в сервис и возвращает ID созданной записи.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/contract-validity/internal/http/response"
	"github.com/magabrotheeeer/contract-validity/internal/http/validation"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// Handler управляет HTTP-запросами на создание контрактов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания контракта.
type Service interface {
	Create(ctx context.Context, req models.DummyContract) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать контракт
// @Description Создает контракт на мониторинг. Возвращает ID созданной записи.
// @Tags Contracts
// @Accept  json
// @Produce  json
// @Param request body models.DummyContract true "Данные контракта"
// @Success 201 {object} response.Response "Контракт создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyContract
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		errors.As(err, &verrs)
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create contract", sl.Err(err))
		status, body := response.FromError(err, "could not create contract")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("contract created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}

// Package check реализует HTTP-обработчик расчёта срока действия контракта
// по сырым данным формы без сохранения.
package check

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contract-validity/internal/http/response"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// Handler считает срок действия.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс расчёта.
type Service interface {
	Check(ctx context.Context, req models.DummyValidityCheck) (validity.Info, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Рассчитать срок действия
// @Description Дата окончания, остаток дней и месяцев, статус и подпись для интерфейса.
// @Description Ошибки входных данных возвращаются с сообщением для формы и именем поля.
// @Tags Validity
// @Accept  json
// @Produce  json
// @Param request body models.DummyValidityCheck true "Дата колокации и длительность"
// @Success 200 {object} response.Response{data=validity.Info}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /validity [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.validity.check"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyValidityCheck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		status, body := http.StatusBadRequest, response.Error("invalid request body")
		if validity.IsValidationError(err) {
			status, body = response.FromError(err, "")
		}
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	res, err := h.service.Check(r.Context(), req)
	if err != nil {
		log.Warn("validity check rejected", sl.Err(err))
		status, body := response.FromError(err, "could not calculate validity")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("validity calculated",
		slog.String("expiration_date", res.ExpirationDate.String()),
		slog.String("status", res.Status.Code()),
	)
	render.JSON(w, r, response.StatusOKWithData(res))
}

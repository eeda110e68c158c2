// Package renewals реализует HTTP-обработчик истории продлений контракта.
package renewals

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contract-validity/internal/http/response"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// Handler отдаёт историю продлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения истории продлений.
type Service interface {
	ListRenewals(ctx context.Context, id int) ([]*models.Renewal, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История продлений
// @Tags Renewals
// @Produce  json
// @Param id path int true "ID контракта"
// @Success 200 {object} response.Response{data=[]models.Renewal}
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Контракт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id}/renewals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.renewals"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.ListRenewals(r.Context(), id)
	if err != nil {
		log.Error("failed to list renewals", sl.Err(err))
		status, body := response.FromError(err, "could not list renewals")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to list renewals", slog.Int("id", id), slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(res))
}

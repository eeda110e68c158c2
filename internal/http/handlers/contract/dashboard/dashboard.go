// Package dashboard реализует HTTP-обработчик сводки по срокам контрактов.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contract-validity/internal/http/response"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// Handler отдаёт сводку для финансового модуля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс построения сводки.
type Service interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка по контрактам
// @Description Количество контрактов по статусам и контракты, истекающие в ближайшие 30 дней.
// @Tags Contracts
// @Produce  json
// @Success 200 {object} response.Response{data=models.Dashboard}
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		status, body := response.FromError(err, "could not build dashboard")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("dashboard built", slog.Int("total", res.Total))
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Package list реализует HTTP-обработчик списка контрактов с фильтром по статусу.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contract-validity/internal/http/response"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// Handler обрабатывает запросы на список контрактов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка.
type Service interface {
	List(ctx context.Context, filter models.ContractFilter) ([]*models.ContractView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список контрактов
// @Description Возвращает контракты со сроками. Фильтр status применяется после расчёта сроков.
// @Tags Contracts
// @Produce  json
// @Param status query string false "expired | expiring_soon | upcoming | active"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=[]models.ContractView}
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 0
	}
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter := models.ContractFilter{Limit: limit, Offset: offset}

	if code := q.Get("status"); code != "" {
		status, err := validity.ParseStatus(code)
		if err != nil {
			log.Error("unknown status filter", slog.String("status", code), sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown status "+code))
			return
		}
		filter.Status = &status
	}

	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list contracts", sl.Err(err))
		status, body := response.FromError(err, "could not list contracts")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to list contracts", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(res))
}

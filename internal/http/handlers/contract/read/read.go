// Package read реализует HTTP-обработчик получения контракта по ID вместе
// с пересчитанными сроками действия.
package read

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

// Handler обрабатывает запросы на получение контракта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения контракта.
type Service interface {
	Read(ctx context.Context, id int) (*models.ContractView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить контракт
// @Description Возвращает контракт и его текущий срок действия: дату окончания, остаток дней и статус.
// @Tags Contracts
// @Produce  json
// @Param id path int true "ID контракта"
// @Success 200 {object} response.Response{data=models.ContractView}
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Контракт не найден"
// @Failure 422 {object} response.ErrorResponse "Некорректные даты контракта"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.read"
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

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read contract", sl.Err(err))
		status, body := response.FromError(err, "could not read contract")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("success to read contract", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(res))
}

// Package renewpreview реализует HTTP-обработчик предварительного расчёта продления.
package renewpreview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/contract-validity/internal/http/response"
	"github.com/magabrotheeeer/contract-validity/internal/http/validation"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

// Handler обрабатывает запросы на расчёт продления.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс расчёта продления без сохранения.
type Service interface {
	PreviewRenewal(ctx context.Context, id, monthsToAdd int) (validity.RenewalInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Предпросмотр продления
// @Description Показывает новую дату окончания и статус без сохранения.
// @Tags Renewals
// @Accept  json
// @Produce  json
// @Param id path int true "ID контракта"
// @Param request body models.DummyRenewal true "Количество месяцев"
// @Success 200 {object} response.Response{data=validity.RenewalInfo}
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Контракт не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contracts/{id}/renewals/preview [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.renewpreview"
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

	var req models.DummyRenewal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		errors.As(err, &verrs)
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	res, err := h.service.PreviewRenewal(r.Context(), id, int(req.MonthsToAdd))
	if err != nil {
		log.Error("failed to preview renewal", sl.Err(err))
		status, body := response.FromError(err, "could not preview renewal")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("renewal previewed", slog.Int("id", id), slog.Int("total_months", res.TotalMonths))
	render.JSON(w, r, response.StatusOKWithData(res))
}

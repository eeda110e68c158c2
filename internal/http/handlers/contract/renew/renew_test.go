package renew

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Renew(ctx context.Context, id, monthsToAdd int) (validity.RenewalInfo, error) {
	args := m.Called(ctx, id, monthsToAdd)
	return args.Get(0).(validity.RenewalInfo), args.Error(1)
}

func serve(svc *MockService, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contracts/"+id+"/renewals", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	New(sl.Discard(), svc).ServeHTTP(w, req)
	return w
}

func TestRenewHandler(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	placement := validity.NewDate(2024, time.January, 15)
	info, err := validity.Renewal(validity.NewDate(2025, time.January, 15), 6, placement, 12, now)
	require.NoError(t, err)

	t.Run("успешное продление", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Renew", mock.Anything, 8, 6).Return(info, nil).Once()

		w := serve(svc, "8", `{"months_to_add":6}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"new_expiration_date":"2025-07-15"`)
		assert.Contains(t, w.Body.String(), `"total_months":18`)
		svc.AssertExpectations(t)
	})

	t.Run("месяцы строкой", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Renew", mock.Anything, 8, 6).Return(info, nil).Once()

		w := serve(svc, "8", `{"months_to_add":"6 meses"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("ноль месяцев", func(t *testing.T) {
		svc := new(MockService)
		w := serve(svc, "8", `{"months_to_add":0}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "MonthsToAdd")
		svc.AssertNotCalled(t, "Renew", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("слишком много месяцев", func(t *testing.T) {
		svc := new(MockService)
		w := serve(svc, "8", `{"months_to_add":500}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "out of range")
	})

	t.Run("контракт не найден", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Renew", mock.Anything, 9, 3).
			Return(validity.RenewalInfo{}, fmt.Errorf("op: %w", storage.ErrContractNotFound)).Once()

		w := serve(svc, "9", `{"months_to_add":3}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("битое тело", func(t *testing.T) {
		svc := new(MockService)
		w := serve(svc, "9", `months`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

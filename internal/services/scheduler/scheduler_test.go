package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/magabrotheeeer/contract-validity/internal/config"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListContracts(ctx context.Context, limit, offset int) ([]*models.Contract, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

// memoryClaims отметки уведомлений в памяти вместо Redis.
type memoryClaims struct {
	mu   sync.Mutex
	keys map[string]time.Duration
	err  error
}

func newMemoryClaims() *memoryClaims {
	return &memoryClaims{keys: make(map[string]time.Duration)}
}

func (m *memoryClaims) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = ttl
	return true, nil
}

func (m *memoryClaims) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

var fixedNow = time.Date(2025, time.January, 10, 8, 30, 0, 0, time.UTC)

func schedulerConfig(batch int) config.Scheduler {
	return config.Scheduler{
		Interval:  time.Hour,
		AlertDays: []int{30, 7, 1, 0},
		BatchSize: batch,
	}
}

func newTestScheduler(r *MockRepository, p *MockPublisher, batch int) *SchedulerService {
	return newTestSchedulerWithClaims(r, p, newMemoryClaims(), func() time.Time { return fixedNow }, batch)
}

func newTestSchedulerWithClaims(r *MockRepository, p *MockPublisher, claims NoticeClaims,
	now validity.Clock, batch int) *SchedulerService {
	return NewSchedulerService(r, p, claims, validity.NewCalculator(now), schedulerConfig(batch), nil, sl.Discard())
}

// contractExpiringIn контракт на 12 месяцев, который истекает через days дней от fixedNow.
func contractExpiringIn(id, days int) *models.Contract {
	expiration := validity.DateOf(fixedNow).AddDate(0, 0, days)
	return &models.Contract{
		ID:             id,
		ClientName:     "Cliente",
		ContactEmail:   "c@example.com",
		PlacementDate:  validity.DateOf(expiration).AddMonths(-12),
		DurationMonths: 12,
	}
}

func TestSchedulerService_RunOnce(t *testing.T) {
	contracts := []*models.Contract{
		contractExpiringIn(1, 7),
		contractExpiringIn(2, 8),
		contractExpiringIn(3, 0),
		contractExpiringIn(4, -1),
	}

	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return(contracts, nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.MatchedBy(func(n models.ExpirationNotice) bool {
		return n.ContractID == 1 && n.DaysRemaining == 7 && n.Status == "Por vencer"
	})).Return(nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.MatchedBy(func(n models.ExpirationNotice) bool {
		return n.ContractID == 3 && n.DaysRemaining == 0
	})).Return(nil).Once()

	published, err := newTestScheduler(r, p, 10).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, published)
	r.AssertExpectations(t)
	p.AssertExpectations(t)
}

func TestSchedulerService_RunOncePaginates(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 2, 0).Return([]*models.Contract{
		contractExpiringIn(1, 30), contractExpiringIn(2, 45),
	}, nil).Once()
	r.On("ListContracts", mock.Anything, 2, 2).Return([]*models.Contract{
		contractExpiringIn(3, 1),
	}, nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(nil).Twice()

	published, err := newTestScheduler(r, p, 2).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, published)
	r.AssertExpectations(t)
}

func TestSchedulerService_PublishErrorContinues(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return([]*models.Contract{
		contractExpiringIn(1, 7), contractExpiringIn(2, 1),
	}, nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(errors.New("channel closed")).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(nil).Once()

	published, err := newTestScheduler(r, p, 10).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
}

func TestSchedulerService_RunOnceTwiceSameDay(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return([]*models.Contract{contractExpiringIn(1, 7)}, nil)
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(nil).Once()

	claims := newMemoryClaims()
	now := fixedNow
	s := newTestSchedulerWithClaims(r, p, claims, func() time.Time { return now }, 10)

	published, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.Equal(t, 48*time.Hour, claims.keys["notice:1:7:2025-01-10"])

	// Второй проход в тот же день, например после перезапуска.
	now = fixedNow.Add(12 * time.Hour)
	published, err = s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, published)
	p.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSchedulerService_NextThresholdNextDay(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	c := contractExpiringIn(1, 1)
	r.On("ListContracts", mock.Anything, 10, 0).Return([]*models.Contract{c}, nil)
	p.On("Publish", mock.Anything, "contract.expiring", mock.MatchedBy(func(n models.ExpirationNotice) bool {
		return n.DaysRemaining == 1
	})).Return(nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.MatchedBy(func(n models.ExpirationNotice) bool {
		return n.DaysRemaining == 0
	})).Return(nil).Once()

	now := fixedNow
	s := newTestSchedulerWithClaims(r, p, newMemoryClaims(), func() time.Time { return now }, 10)

	for _, day := range []int{0, 0, 1, 1} {
		now = fixedNow.AddDate(0, 0, day)
		_, err := s.RunOnce(context.Background())
		require.NoError(t, err)
	}
	p.AssertExpectations(t)
}

func TestSchedulerService_PublishErrorReleasesClaim(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return([]*models.Contract{contractExpiringIn(1, 7)}, nil)
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(errors.New("channel closed")).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(nil).Once()

	claims := newMemoryClaims()
	s := newTestSchedulerWithClaims(r, p, claims, func() time.Time { return fixedNow }, 10)

	published, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, published)
	assert.Empty(t, claims.keys)

	published, err = s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	p.AssertExpectations(t)
}

func TestSchedulerService_ClaimErrorStillPublishes(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return([]*models.Contract{contractExpiringIn(1, 7)}, nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.Anything).Return(nil).Once()

	claims := newMemoryClaims()
	claims.err = errors.New("redis down")
	published, err := newTestSchedulerWithClaims(r, p, claims, func() time.Time { return fixedNow }, 10).
		RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
}

func TestSchedulerService_UsesRenewedExpiration(t *testing.T) {
	// placement + duration даёт 31-е число, продлённая дата 7 дней от fixedNow.
	c := &models.Contract{
		ID:             9,
		ClientName:     "Renovado",
		PlacementDate:  validity.NewDate(2024, time.October, 31),
		DurationMonths: 3,
		ExpirationDate: validity.NewDate(2025, time.January, 17),
	}
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return([]*models.Contract{c}, nil).Once()
	p.On("Publish", mock.Anything, "contract.expiring", mock.MatchedBy(func(n models.ExpirationNotice) bool {
		return n.ContractID == 9 && n.DaysRemaining == 7 && n.ExpirationDate.String() == "2025-01-17"
	})).Return(nil).Once()

	published, err := newTestScheduler(r, p, 10).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	p.AssertExpectations(t)
}

func TestSchedulerService_RepositoryError(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	r.On("ListContracts", mock.Anything, 10, 0).Return(nil, errors.New("db down")).Once()

	_, err := newTestScheduler(r, p, 10).RunOnce(context.Background())
	require.Error(t, err)
	p.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedulerService_RunStopsOnCancel(t *testing.T) {
	r, p := new(MockRepository), new(MockPublisher)
	called := make(chan struct{}, 1)
	r.On("ListContracts", mock.Anything, 10, 0).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	}).Return([]*models.Contract{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- newTestScheduler(r, p, 10).Run(ctx)
	}()

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not run the first pass")
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

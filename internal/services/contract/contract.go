// Package services содержит бизнес-логику учёта контрактов и расчёта их сроков.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/contract-validity/internal/cache"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/metrics"
	"github.com/magabrotheeeer/contract-validity/internal/models"
	"github.com/magabrotheeeer/contract-validity/internal/storage"
)

const (
	// DefaultLimit размер страницы списка по умолчанию.
	DefaultLimit = 50
	// MaxLimit верхняя граница размера страницы.
	MaxLimit = 1000

	scanBatch = 500
)

// ErrContractNotFound контракт не найден.
var ErrContractNotFound = storage.ErrContractNotFound

// ContractRepository определяет методы хранилища контрактов.
type ContractRepository interface {
	// CreateContract добавляет контракт и возвращает его ID.
	CreateContract(ctx context.Context, c models.Contract) (int, error)
	// ReadContract возвращает контракт по ID.
	ReadContract(ctx context.Context, id int) (*models.Contract, error)
	// UpdateContract обновляет контракт по ID.
	UpdateContract(ctx context.Context, c models.Contract, id int) (int, error)
	// RemoveContract удаляет контракт по ID.
	RemoveContract(ctx context.Context, id int) (int, error)
	// ListContracts возвращает контракты с пагинацией.
	ListContracts(ctx context.Context, limit, offset int) ([]*models.Contract, error)
	// CountContracts возвращает общее число контрактов.
	CountContracts(ctx context.Context) (int, error)
	// RenewContract блокирует контракт, передаёт его в apply и сохраняет
	// изменённую запись вместе с продлением в одной транзакции.
	RenewContract(ctx context.Context, id int, apply func(c *models.Contract) (models.Renewal, error)) error
	// ListRenewals возвращает историю продлений.
	ListRenewals(ctx context.Context, contractID int) ([]*models.Renewal, error)
}

// Cache описывает методы для кеширования записей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ContractService реализует операции над контрактами. Сроки действия
// вычисляются при каждом обращении и не кешируются.
type ContractService struct {
	repo    ContractRepository
	cache   Cache
	calc    *validity.Calculator
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewContractService создает новый экземпляр ContractService.
func NewContractService(repo ContractRepository, cache Cache, calc *validity.Calculator,
	m *metrics.Metrics, log *slog.Logger) *ContractService {
	if calc == nil {
		calc = validity.NewCalculator(nil)
	}
	return &ContractService{
		repo:    repo,
		cache:   cache,
		calc:    calc,
		metrics: m,
		log:     log,
	}
}

// DurationText текстовое представление длительности, как его хранит бэкенд.
func DurationText(months int) string {
	if months == 1 {
		return "1 mes"
	}
	return strconv.Itoa(months) + " meses"
}

// Create проверяет данные контракта, сохраняет его и кладёт запись в кеш.
func (s *ContractService) Create(ctx context.Context, req models.DummyContract) (int, error) {
	const op = "services.ContractService.Create"

	c, err := contractFromRequest(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateContract(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	c.ID = id
	s.log.Info("created new contract", slog.Int("id", id))

	s.cacheContract(ctx, &c)
	return id, nil
}

// Read возвращает контракт и его текущие сроки.
func (s *ContractService) Read(ctx context.Context, id int) (*models.ContractView, error) {
	const op = "services.ContractService.Read"

	c, err := s.record(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	view, err := s.view(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveStatus(view.Validity.Status)
	return view, nil
}

// Update перепроверяет и сохраняет контракт, запись в кеше перечитывается.
func (s *ContractService) Update(ctx context.Context, id int, req models.DummyContract) (int, error) {
	const op = "services.ContractService.Update"

	c, err := contractFromRequest(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.UpdateContract(ctx, c, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated contract", slog.Int("id", id))

	s.refresh(ctx, id)
	return res, nil
}

// Remove удаляет контракт и сбрасывает кеш.
func (s *ContractService) Remove(ctx context.Context, id int) (int, error) {
	const op = "services.ContractService.Remove"

	s.invalidate(ctx, id)
	count, err := s.repo.RemoveContract(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed contract", slog.Int("id", id))
	return count, nil
}

// List возвращает контракты со сроками. Фильтр по статусу применяется
// после расчёта, поэтому limit и offset относятся к отфильтрованной выборке.
func (s *ContractService) List(ctx context.Context, filter models.ContractFilter) ([]*models.ContractView, error) {
	const op = "services.ContractService.List"

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	if filter.Status == nil {
		contracts, err := s.repo.ListContracts(ctx, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		views := make([]*models.ContractView, 0, len(contracts))
		for _, c := range contracts {
			view, err := s.view(c)
			if err != nil {
				s.log.Warn("skip contract with broken dates", slog.Int("id", c.ID), sl.Err(err))
				continue
			}
			views = append(views, view)
		}
		return views, nil
	}

	views := make([]*models.ContractView, 0)
	skipped := 0
	err := s.scan(ctx, func(view *models.ContractView) bool {
		if view.Validity.Status != *filter.Status {
			return true
		}
		if skipped < offset {
			skipped++
			return true
		}
		views = append(views, view)
		return len(views) < limit
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views, nil
}

// Check считает сроки по сырым данным формы без обращения к хранилищу.
func (s *ContractService) Check(_ context.Context, req models.DummyValidityCheck) (validity.Info, error) {
	const op = "services.ContractService.Check"

	duration := string(req.ContractDuration)
	if err := validity.ValidateContractData(req.PlacementDate, duration).AsError(); err != nil {
		return validity.Info{}, fmt.Errorf("%s: %w", op, err)
	}
	placement, err := validity.ParseDate(req.PlacementDate)
	if err != nil {
		return validity.Info{}, fmt.Errorf("%s: %w", op, err)
	}
	months, err := validity.ParseMonths(duration)
	if err != nil {
		return validity.Info{}, fmt.Errorf("%s: %w", op, err)
	}
	info, err := s.calc.Validity(placement, months)
	if err != nil {
		return validity.Info{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveStatus(info.Status)
	return info, nil
}

// PreviewRenewal показывает результат продления без сохранения.
func (s *ContractService) PreviewRenewal(ctx context.Context, id, monthsToAdd int) (validity.RenewalInfo, error) {
	const op = "services.ContractService.PreviewRenewal"

	c, err := s.record(ctx, id)
	if err != nil {
		return validity.RenewalInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	info, err := s.renewal(c, monthsToAdd)
	if err != nil {
		return validity.RenewalInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// Renew продлевает контракт. Продление считается по заблокированной записи,
// запись продления и новые срок и дата окончания сохраняются в одной транзакции.
func (s *ContractService) Renew(ctx context.Context, id, monthsToAdd int) (validity.RenewalInfo, error) {
	const op = "services.ContractService.Renew"

	var info validity.RenewalInfo
	err := s.repo.RenewContract(ctx, id, func(c *models.Contract) (models.Renewal, error) {
		var err error
		info, err = s.renewal(c, monthsToAdd)
		if err != nil {
			return models.Renewal{}, err
		}
		c.ContractDuration = DurationText(info.TotalMonths)
		c.DurationMonths = info.TotalMonths
		c.ExpirationDate = info.NewExpirationDate
		return models.Renewal{
			ID:                 uuid.New(),
			ContractID:         id,
			RenewalDate:        info.RenewalDate,
			MonthsAdded:        info.MonthsAdded,
			PreviousExpiration: info.CurrentExpirationDate,
			NewExpiration:      info.NewExpirationDate,
			TotalMonths:        info.TotalMonths,
		}, nil
	})
	if err != nil {
		return validity.RenewalInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	s.metrics.ObserveRenewal()
	s.log.Info("renewed contract",
		slog.Int("id", id),
		slog.Int("months_added", monthsToAdd),
		slog.String("new_expiration", info.NewExpirationDate.String()),
	)
	return info, nil
}

// ListRenewals возвращает историю продлений существующего контракта.
func (s *ContractService) ListRenewals(ctx context.Context, id int) ([]*models.Renewal, error) {
	const op = "services.ContractService.ListRenewals"

	if _, err := s.record(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	renewals, err := s.repo.ListRenewals(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if renewals == nil {
		renewals = []*models.Renewal{}
	}
	return renewals, nil
}

// Dashboard сводка по статусам и список контрактов, истекающих в ближайшие 30 дней.
// Total берётся из хранилища, контракты с битыми датами попадают в Unreadable.
func (s *ContractService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	const op = "services.ContractService.Dashboard"

	total, err := s.repo.CountContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	d := &models.Dashboard{
		Total:    total,
		Counts:   make(map[string]int, len(validity.Statuses())),
		Expiring: make([]*models.ContractView, 0),
		AsOf:     s.calc.Today(),
	}
	for _, st := range validity.Statuses() {
		d.Counts[st.Code()] = 0
	}

	scanned := 0
	err = s.scan(ctx, func(view *models.ContractView) bool {
		scanned++
		d.Counts[view.Validity.Status.Code()]++
		if view.Validity.IsExpiringSoon {
			d.Expiring = append(d.Expiring, view)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// Между COUNT и обходом таблица могла измениться.
	d.Unreadable = max(d.Total-scanned, 0)

	sort.SliceStable(d.Expiring, func(i, j int) bool {
		return d.Expiring[i].Validity.DaysRemaining < d.Expiring[j].Validity.DaysRemaining
	})
	return d, nil
}

// scan обходит все контракты пачками и передаёт их в fn, пока она возвращает true.
func (s *ContractService) scan(ctx context.Context, fn func(*models.ContractView) bool) error {
	for offset := 0; ; offset += scanBatch {
		contracts, err := s.repo.ListContracts(ctx, scanBatch, offset)
		if err != nil {
			return err
		}
		for _, c := range contracts {
			view, err := s.view(c)
			if err != nil {
				s.log.Warn("skip contract with broken dates", slog.Int("id", c.ID), sl.Err(err))
				continue
			}
			if !fn(view) {
				return nil
			}
		}
		if len(contracts) < scanBatch {
			return nil
		}
	}
}

func (s *ContractService) record(ctx context.Context, id int) (*models.Contract, error) {
	var c models.Contract
	key := cache.ContractKey(id)
	found, err := s.cache.Get(ctx, key, &c)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &c, nil
	}

	result, err := s.repo.ReadContract(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheContract(ctx, result)
	return result, nil
}

func (s *ContractService) view(c *models.Contract) (*models.ContractView, error) {
	expiration, err := c.Expiration()
	if err != nil {
		return nil, err
	}
	info, err := s.calc.ValidityUntil(c.PlacementDate, c.DurationMonths, expiration)
	if err != nil {
		return nil, err
	}
	return &models.ContractView{Contract: c, Validity: info}, nil
}

func (s *ContractService) renewal(c *models.Contract, monthsToAdd int) (validity.RenewalInfo, error) {
	expiration, err := c.Expiration()
	if err != nil {
		return validity.RenewalInfo{}, err
	}
	return s.calc.Renewal(expiration, monthsToAdd, c.PlacementDate, c.DurationMonths)
}

func (s *ContractService) cacheContract(ctx context.Context, c *models.Contract) {
	key := cache.ContractKey(c.ID)
	if err := s.cache.Set(ctx, key, c, 0); err != nil {
		s.log.Warn("failed to cache contract", slog.String("key", key), sl.Err(err))
	}
}

// refresh перечитывает запись из хранилища в кеш. Если чтение не удалось,
// ключ удаляется, чтобы не отдавать старую запись.
func (s *ContractService) refresh(ctx context.Context, id int) {
	c, err := s.repo.ReadContract(ctx, id)
	if err != nil {
		s.log.Warn("failed to reload contract", slog.Int("id", id), sl.Err(err))
		s.invalidate(ctx, id)
		return
	}
	s.cacheContract(ctx, c)
}

func (s *ContractService) invalidate(ctx context.Context, id int) {
	key := cache.ContractKey(id)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}

func contractFromRequest(req models.DummyContract) (models.Contract, error) {
	duration := string(req.ContractDuration)
	if err := validity.ValidateContractData(req.PlacementDate, duration).AsError(); err != nil {
		return models.Contract{}, err
	}
	placement, err := validity.ParseDate(req.PlacementDate)
	if err != nil {
		return models.Contract{}, err
	}
	months, err := validity.ParseMonths(duration)
	if err != nil {
		return models.Contract{}, err
	}
	return models.Contract{
		ClientName:       req.ClientName,
		CarrierSerial:    req.CarrierSerial,
		ContactEmail:     req.ContactEmail,
		PlacementDate:    placement,
		ContractDuration: duration,
		DurationMonths:   months,
	}, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// IsNotFound true, если контракт не существует.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContractNotFound)
}

// Package services периодически находит контракты, срок которых подходит
// к концу, и публикует уведомления в очередь.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/contract-validity/internal/cache"
	"github.com/magabrotheeeer/contract-validity/internal/config"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
	"github.com/magabrotheeeer/contract-validity/internal/metrics"
	"github.com/magabrotheeeer/contract-validity/internal/models"
	"github.com/magabrotheeeer/contract-validity/internal/rabbitmq"
)

// ContractLister постраничное чтение всех контрактов.
type ContractLister interface {
	ListContracts(ctx context.Context, limit, offset int) ([]*models.Contract, error)
}

// Publisher публикует сообщение по ключу маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// NoticeClaims отметки об уже отправленных уведомлениях.
type NoticeClaims interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// noticeClaimTTL отметка живёт дольше суток, в которые она действует.
const noticeClaimTTL = 48 * time.Hour

// SchedulerService планировщик уведомлений об окончании контрактов.
// Уведомление по контракту и порогу отправляется не чаще раза в сутки
// по UTC, сколько бы проходов и перезапусков ни было.
type SchedulerService struct {
	repo      ContractLister
	publisher Publisher
	claims    NoticeClaims
	calc      *validity.Calculator
	alertDays map[int]struct{}
	batchSize int
	interval  time.Duration
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo ContractLister, publisher Publisher, claims NoticeClaims,
	calc *validity.Calculator, cfg config.Scheduler, m *metrics.Metrics, log *slog.Logger) *SchedulerService {
	if calc == nil {
		calc = validity.NewCalculator(nil)
	}
	alertDays := make(map[int]struct{}, len(cfg.AlertDays))
	for _, d := range cfg.AlertDays {
		alertDays[d] = struct{}{}
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 500
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 12 * time.Hour
	}
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		claims:    claims,
		calc:      calc,
		alertDays: alertDays,
		batchSize: batch,
		interval:  interval,
		metrics:   m,
		log:       log,
	}
}

// Run выполняет проход сразу и затем по таймеру до отмены ctx.
func (s *SchedulerService) Run(ctx context.Context) error {
	s.runOnceLogged(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return nil
		case <-ticker.C:
			s.runOnceLogged(ctx)
		}
	}
}

func (s *SchedulerService) runOnceLogged(ctx context.Context) {
	published, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("failed to notify expiring contracts", sl.Err(err))
		return
	}
	if published == 0 {
		s.log.Info("no expiring contracts found")
		return
	}
	s.log.Info("published expiring contract notices", slog.Int("count", published))
}

// RunOnce обходит все контракты и публикует уведомления для тех, у кого
// остаток дней совпадает с одним из alert_days и отметки за сегодня ещё нет.
// Возвращает число уведомлений.
func (s *SchedulerService) RunOnce(ctx context.Context) (int, error) {
	const op = "services.SchedulerService.RunOnce"

	today := s.calc.Today().String()
	published := 0
	for offset := 0; ; offset += s.batchSize {
		contracts, err := s.repo.ListContracts(ctx, s.batchSize, offset)
		if err != nil {
			return published, fmt.Errorf("%s: %w", op, err)
		}
		for _, c := range contracts {
			notice, ok := s.notice(c)
			if !ok {
				continue
			}
			key := cache.NoticeKey(c.ID, notice.DaysRemaining, today)
			if !s.claim(ctx, key) {
				continue
			}
			if err := s.publisher.Publish(ctx, rabbitmq.ContractExpiringKey, notice); err != nil {
				s.log.Error("failed to publish message", slog.Int("contract_id", c.ID), sl.Err(err))
				s.release(ctx, key)
				if ctx.Err() != nil {
					return published, fmt.Errorf("%s: %w", op, ctx.Err())
				}
				continue
			}
			s.metrics.ObserveNoticePublished(notice.DaysRemaining)
			published++
		}
		if len(contracts) < s.batchSize {
			return published, nil
		}
	}
}

// claim false, если уведомление по ключу уже отправлено. Если хранилище
// отметок недоступно, уведомление всё равно публикуется.
func (s *SchedulerService) claim(ctx context.Context, key string) bool {
	ok, err := s.claims.Claim(ctx, key, noticeClaimTTL)
	if err != nil {
		s.log.Warn("failed to claim notice", slog.String("key", key), sl.Err(err))
		return true
	}
	if !ok {
		s.log.Debug("notice already sent today", slog.String("key", key))
	}
	return ok
}

// release снимает отметку, чтобы следующий проход повторил публикацию.
func (s *SchedulerService) release(ctx context.Context, key string) {
	if err := s.claims.Invalidate(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn("failed to release notice claim", slog.String("key", key), sl.Err(err))
	}
}

func (s *SchedulerService) notice(c *models.Contract) (models.ExpirationNotice, bool) {
	expiration, err := c.Expiration()
	if err != nil {
		s.log.Warn("skip contract with broken dates", slog.Int("contract_id", c.ID), sl.Err(err))
		return models.ExpirationNotice{}, false
	}
	info, err := s.calc.ValidityUntil(c.PlacementDate, c.DurationMonths, expiration)
	if err != nil {
		s.log.Warn("skip contract with broken dates", slog.Int("contract_id", c.ID), sl.Err(err))
		return models.ExpirationNotice{}, false
	}
	if _, ok := s.alertDays[info.DaysRemaining]; !ok {
		return models.ExpirationNotice{}, false
	}
	return models.ExpirationNotice{
		ContractID:     c.ID,
		ClientName:     c.ClientName,
		CarrierSerial:  c.CarrierSerial,
		ContactEmail:   c.ContactEmail,
		ExpirationDate: info.ExpirationDate,
		DaysRemaining:  info.DaysRemaining,
		Status:         info.Status.Label(),
	}, true
}

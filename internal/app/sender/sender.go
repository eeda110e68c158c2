// Package sender собирает процесс, который отправляет письма
// об окончании контрактов из очереди уведомлений.
package sender

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/contract-validity/internal/config"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
	"github.com/magabrotheeeer/contract-validity/internal/lib/smtp"
	"github.com/magabrotheeeer/contract-validity/internal/metrics"
	"github.com/magabrotheeeer/contract-validity/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/contract-validity/internal/services/sender"
)

// App приложение отправителя писем.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	metricsServer *http.Server
	logger        *slog.Logger
}

// New подключается к брокеру и готовит SMTP-транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(transport, cfg.DefaultRecipient, m, logger)

	app := &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}
	if cfg.MetricsAddress != "" {
		app.metricsServer = metrics.NewServer(cfg.MetricsAddress, reg)
	}
	return app, nil
}

// Run потребляет очередь до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ContractExpiringQueue, a.logger, a.senderService.SendExpirationNotice)
	if err != nil {
		a.logger.Error("failed to start consumer",
			slog.String("queue", rabbitmq.ContractExpiringQueue), sl.Err(err))
		a.close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.metricsServer != nil {
		g.Go(func() error {
			return metrics.Serve(gctx, a.metricsServer, a.logger)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	err = g.Wait()

	a.logger.Info("sender service shutting down gracefully")
	a.close()
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}

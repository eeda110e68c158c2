// Package main Contract Validity API
//
// @title           Contract Validity API
// @version         1.0
// @description     API расчёта сроков действия контрактов на электронный мониторинг
// @description     и учёта их продлений.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/contract-validity/internal/app/contracts"
	"github.com/magabrotheeeer/contract-validity/internal/config"
	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
)

func main() {
	// .env необязателен, переменные могут прийти из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sl.Setup(cfg.Env)

	logger.Info("starting contracts service", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := contracts.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("contracts service stopped gracefully")
}

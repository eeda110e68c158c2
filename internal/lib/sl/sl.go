// Package sl содержит вспомогательные функции для работы с логгером slog:
// единообразные атрибуты ошибок и настройку логгера под окружение.
package sl

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to renew contract", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op атрибут с именем операции.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}

// Setup создаёт логгер под окружение: текст с debug локально,
// JSON с info в dev и prod.
func Setup(env string) *slog.Logger {
	return SetupTo(os.Stdout, env)
}

// SetupTo то же, что Setup, но пишет в w.
func SetupTo(w io.Writer, env string) *slog.Logger {
	switch strings.ToLower(env) {
	case envDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Discard логгер, который ничего не пишет. Нужен в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root logger for the given environment.
// Local runs log human-readable text to stdout; dev and prod write
// JSON to stdout and a log file under logDir.
func SetupLogger(env, logDir string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(logWriter(logDir), &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(logWriter(logDir), &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func logWriter(logDir string) io.Writer {
	f, err := os.OpenFile(filepath.Join(logDir, "bazaarbot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, f)
}

// Notifier forwards a single message to an out-of-band channel,
// e.g. the admin's Telegram chat.
type Notifier interface {
	SendMessage(msg string)
}

// notifyHandler duplicates records at or above a minimum level to a Notifier.
type notifyHandler struct {
	slog.Handler
	notifier Notifier
	minLevel slog.Level
}

// SetupNotifyHandler wraps log so that records at minLevel or above are
// also pushed to the notifier.
func SetupNotifyHandler(log *slog.Logger, notifier Notifier, minLevel slog.Level) *slog.Logger {
	return slog.New(&notifyHandler{
		Handler:  log.Handler(),
		notifier: notifier,
		minLevel: minLevel,
	})
}

func (h *notifyHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel && h.notifier != nil {
		h.notifier.SendMessage(r.Level.String() + ": " + r.Message)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *notifyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &notifyHandler{
		Handler:  h.Handler.WithAttrs(attrs),
		notifier: h.notifier,
		minLevel: h.minLevel,
	}
}

func (h *notifyHandler) WithGroup(name string) slog.Handler {
	return &notifyHandler{
		Handler:  h.Handler.WithGroup(name),
		notifier: h.notifier,
		minLevel: h.minLevel,
	}
}

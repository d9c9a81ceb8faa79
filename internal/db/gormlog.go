package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slogGormLogger sends each GORM line to slog at the matching level: SQL
// traces at INFO, slow queries at WARN, failed queries at ERROR.
type slogGormLogger struct {
	info, warn, err logger.Interface
}

func newGormLogger(h slog.Handler, level logger.LogLevel) logger.Interface {
	cfg := logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	}

	return &slogGormLogger{
		info: logger.New(slog.NewLogLogger(h, slog.LevelInfo), cfg),
		warn: logger.New(slog.NewLogLogger(h, slog.LevelWarn), cfg),
		err:  logger.New(slog.NewLogLogger(h, slog.LevelError), cfg),
	}
}

func (l *slogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &slogGormLogger{
		info: l.info.LogMode(level),
		warn: l.warn.LogMode(level),
		err:  l.err.LogMode(level),
	}
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.info.Info(ctx, msg, data...)
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.warn.Warn(ctx, msg, data...)
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.err.Error(ctx, msg, data...)
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.err.Trace(ctx, begin, fc, err)
	case time.Since(begin) > slowQueryThreshold:
		l.warn.Trace(ctx, begin, fc, err)
	default:
		l.info.Trace(ctx, begin, fc, err)
	}
}

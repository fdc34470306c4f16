package services

import (
	"context"
	"time"

	"destined_affinity/internal/email"
	"destined_affinity/internal/events"
	"destined_affinity/internal/logger"
	"destined_affinity/internal/metrics"

	"gorm.io/gorm"
)

// Effects - побочные эффекты операций: аудит, метрики, письма.
// Ни один из них не влияет на результат операции.
type Effects struct {
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Notifier  *email.Notifier
	Now       func() time.Time
}

func (e *Effects) now() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Effects) publish(ctx context.Context, event events.Event) {
	if e == nil || e.Publisher == nil {
		return
	}
	if event.At.IsZero() {
		event.At = e.now()
	}
	if err := e.Publisher.Publish(ctx, event); err != nil {
		logger.CtxWithError(ctx, "Failed to publish audit event", err, "type", event.Type)
	}
}

func (e *Effects) metrics() *metrics.Metrics {
	if e == nil {
		return nil
	}
	return e.Metrics
}

func (e *Effects) notifier() *email.Notifier {
	if e == nil {
		return nil
	}
	return e.Notifier
}

func ctxOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

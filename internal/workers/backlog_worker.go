package workers

import (
	"context"
	"time"

	"destined_affinity/internal/logger"
	"destined_affinity/internal/metrics"
	"destined_affinity/internal/models"
	"destined_affinity/internal/repositories"

	"gorm.io/gorm"
)

const backlogWorkerName = "backlog"

// Backlog - очередь на решение админа
type Backlog struct {
	PendingAccess  int64
	PendingPremium int64
}

// BacklogWorker периодически считает ожидающие запросы доступа и заявки
// на premium и выставляет их в gauge
type BacklogWorker struct {
	db         *gorm.DB
	accessRepo repositories.AccessRequestRepository
	memberRepo repositories.MemberRepository
	metrics    *metrics.Metrics
	interval   time.Duration
}

func NewBacklogWorker(
	db *gorm.DB,
	accessRepo repositories.AccessRequestRepository,
	memberRepo repositories.MemberRepository,
	m *metrics.Metrics,
	interval time.Duration,
) *BacklogWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BacklogWorker{
		db:         db,
		accessRepo: accessRepo,
		memberRepo: memberRepo,
		metrics:    m,
		interval:   interval,
	}
}

// Start запускает цикл в отдельной горутине; останавливается по ctx
func (w *BacklogWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *BacklogWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// первый замер сразу, не дожидаясь тика
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog(backlogWorkerName, "stop", nil)
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один замер; ошибка логируется, gauge не трогается
func (w *BacklogWorker) RunOnce(ctx context.Context) (*Backlog, error) {
	db := w.db.WithContext(ctx)

	pendingAccess, err := w.accessRepo.CountByStatus(db, models.AccessStatusPending)
	if err != nil {
		logger.WorkerLog(backlogWorkerName, "count_access", err)
		return nil, err
	}
	pendingPremium, err := w.memberRepo.CountByPremiumStatus(db, models.PremiumStatusPending)
	if err != nil {
		logger.WorkerLog(backlogWorkerName, "count_premium", err)
		return nil, err
	}

	w.metrics.SetBacklog(pendingAccess, pendingPremium)
	logger.WorkerLog(backlogWorkerName, "tick", nil,
		"pending_access", pendingAccess,
		"pending_premium", pendingPremium,
	)
	return &Backlog{PendingAccess: pendingAccess, PendingPremium: pendingPremium}, nil
}

package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/adapter/notify"
	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// OutboxSource exposes the subset of application functionality required by
// the dispatcher.
type OutboxSource interface {
	NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error)
}

// NotificationDispatcher drains the notification outbox with a worker pool.
// Entries are claimed at selection time; a failed send is logged and
// dropped, since delivery guarantees are the channel's concern, not ours.
type NotificationDispatcher struct {
	source       OutboxSource
	sender       notify.Sender
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationDispatcher constructs the dispatcher worker pool.
func NewNotificationDispatcher(source OutboxSource, sender notify.Sender, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &NotificationDispatcher{
		source:       source,
		sender:       sender,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Notification, batchSize*workers),
	}
}

// Start launches background processing.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *NotificationDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx)
		}
	}
}

func (d *NotificationDispatcher) fetchAndDispatch(ctx context.Context) {
	batch, err := d.source.NotificationsForDispatch(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("fetch notifications for dispatch failed", slog.String("error", err.Error()))
		return
	}
	for _, n := range batch {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- n:
		}
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-d.jobs:
			if !ok {
				return
			}
			if err := d.sender.Send(ctx, n); err != nil {
				d.logger.Error("notification send failed",
					slog.Int64("notification_id", n.ID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

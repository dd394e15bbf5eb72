package workers

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"medidispatch/internal/domain"
	"medidispatch/internal/notify"
	"medidispatch/pkg/e"
)

type NotifyQueue interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.NotificationJob, error)
}

// NotifyWorkerPool drains the notification queue and fans jobs out to
// the configured senders. One failed sender does not stop the pool;
// delivery is at-most-once per sender.
type NotifyWorkerPool struct {
	logger   *slog.Logger
	queue    NotifyQueue
	senders  []notify.Sender
	poolSize int
}

func NewNotifyWorkerPool(logger *slog.Logger, queue NotifyQueue, senders []notify.Sender, poolSize int) *NotifyWorkerPool {
	if poolSize < 1 {
		poolSize = 1
	}
	return &NotifyWorkerPool{
		logger:   logger,
		queue:    queue,
		senders:  senders,
		poolSize: poolSize,
	}
}

func (p *NotifyWorkerPool) Run(ctx context.Context) {
	p.logger.Info("notify worker pool started",
		slog.Int("pool_size", p.poolSize),
		slog.Int("senders", len(p.senders)),
	)

	var wg sync.WaitGroup
	for i := 0; i < p.poolSize; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.worker(ctx, id)
		}(i)
	}
	wg.Wait()

	p.logger.Info("notify worker pool stopped")
}

func (p *NotifyWorkerPool) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := p.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("queue pop failed",
				slog.Int("worker", id),
				slog.Any("error", err),
			)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		p.deliver(ctx, id, job)
	}
}

func (p *NotifyWorkerPool) deliver(ctx context.Context, id int, job domain.NotificationJob) {
	for _, s := range p.senders {
		if err := s.Send(ctx, job); err != nil {
			p.logger.Warn("delivery failed",
				slog.Int("worker", id),
				slog.String("dispatch_id", job.DispatchID.String()),
				slog.String("candidate_id", job.CandidateID.String()),
				slog.Any("error", err),
			)
			continue
		}
		p.logger.Debug("delivered",
			slog.Int("worker", id),
			slog.String("candidate_id", job.CandidateID.String()),
		)
	}
}

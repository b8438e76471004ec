package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openclinic/agenda-api/internal/repository"
)

// OutboxCleanupWorker prunes processed outbox events past the retention
// window so the table stays small.
type OutboxCleanupWorker struct {
	repo            repository.OutboxRepository
	retention       time.Duration
	cleanupInterval time.Duration
}

func NewOutboxCleanupWorker(repo repository.OutboxRepository, retention, cleanupInterval time.Duration) *OutboxCleanupWorker {
	return &OutboxCleanupWorker{
		repo:            repo,
		retention:       retention,
		cleanupInterval: cleanupInterval,
	}
}

func (w *OutboxCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.cleanup(ctx); err != nil {
				log.Error().Err(err).Msg("outbox cleanup failed")
			}
		}
	}
}

func (w *OutboxCleanupWorker) cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-w.retention)

	rows, err := w.repo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	log.Info().Int64("deleted", rows).Time("cutoff", cutoff).Msg("pruned processed outbox events")
	return nil
}

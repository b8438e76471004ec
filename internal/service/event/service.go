package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
)

const eventExpiry = 24 * time.Hour

// Emitter appends domain events to the transactional outbox. A separate
// worker drains the outbox and publishes to the broker, so API requests
// never block on messaging.
type Emitter interface {
	Emit(ctx context.Context, eventType string, payload interface{}) error
}

type Service struct {
	outboxRepo repository.OutboxRepository
}

func NewService(outboxRepo repository.OutboxRepository) *Service {
	return &Service{outboxRepo: outboxRepo}
}

func (s *Service) Emit(ctx context.Context, eventType string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payloadJSON,
	}

	if err := s.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}

	return nil
}

// CleanupProcessedEvents deletes events older than the retention window.
func (s *Service) CleanupProcessedEvents(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-eventExpiry)
	count, err := s.outboxRepo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup events: %w", err)
	}
	return count, nil
}

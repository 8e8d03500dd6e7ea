// Package events publishes debit card lifecycle events to RabbitMQ.
package events

import (
	"context"
	"debitcard-backend/pkg/logger"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DebitCardCreated            = "debit_card.created"
	DebitCardActivated          = "debit_card.activated"
	DebitCardDeactivated        = "debit_card.deactivated"
	DebitCardDeleted            = "debit_card.deleted"
	DebitCardTransactionCreated = "debit_card_transaction.created"
)

// Exchange is the topic exchange every event is published to.
const Exchange = "debit_card_events"

type Event struct {
	EventID     uuid.UUID              `json:"event_id"`
	Type        string                 `json:"type"`
	UserID      uint                   `json:"user_id"`
	DebitCardID uint                   `json:"debit_card_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// NewEvent stamps a fresh id and timestamp.
func NewEvent(eventType string, userID, debitCardID uint, data map[string]interface{}) Event {
	return Event{
		EventID:     uuid.New(),
		Type:        eventType,
		UserID:      userID,
		DebitCardID: debitCardID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

var (
	mu      sync.RWMutex
	current Publisher = NoopPublisher{}
)

// SetPublisher replaces the process-wide publisher. A nil publisher restores the no-op one.
func SetPublisher(p Publisher) {
	mu.Lock()
	defer mu.Unlock()
	if p == nil {
		p = NoopPublisher{}
	}
	current = p
}

// Emit publishes event on the current publisher. Failures are logged and
// never returned: the database write the event describes has already committed.
func Emit(ctx context.Context, event Event) {
	mu.RLock()
	p := current
	mu.RUnlock()

	if err := p.Publish(ctx, event); err != nil {
		logger.Log.Warn("failed to publish event",
			zap.String("type", event.Type),
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, event Event) error {
	logger.Log.Debug("event publish skipped", zap.String("type", event.Type), zap.Uint("debit_card_id", event.DebitCardID))
	return nil
}

func (NoopPublisher) Close() {}

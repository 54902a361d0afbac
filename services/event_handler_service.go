package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stickyboard/broker"
	"stickyboard/database"
	"stickyboard/models"

	"go.uber.org/zap"
)

const defaultEventBatchSize = 100

type EventHandlerServiceInterface interface {
	Start()
	Stop()
	ProcessPendingEvents(ctx context.Context) (int, error)
}

// EventHandlerService drains the events outbox into the message bus.
type EventHandlerService struct {
	db        *database.Database
	publisher broker.Publisher
	interval  time.Duration
	batchSize int
	log       *zap.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewEventHandlerService(db *database.Database, publisher broker.Publisher, interval time.Duration, log *zap.Logger) *EventHandlerService {
	if interval <= 0 {
		interval = time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventHandlerService{
		db:        db,
		publisher: publisher,
		interval:  interval,
		batchSize: defaultEventBatchSize,
		log:       log,
	}
}

func (s *EventHandlerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.isRunning = true
	go s.run(ctx, s.done)
}

// Stop halts the polling loop and waits for an in-flight pass to finish.
func (s *EventHandlerService) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cancel()
	done := s.done
	s.mu.Unlock()

	<-done
}

func (s *EventHandlerService) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ProcessPendingEvents(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("event dispatch pass failed", zap.Error(err))
			}
		}
	}
}

// ProcessPendingEvents publishes undispatched events oldest first and returns
// how many were delivered. A failed publish ends the pass so later events do
// not overtake it.
func (s *EventHandlerService) ProcessPendingEvents(ctx context.Context) (int, error) {
	if s.publisher == nil {
		return 0, ErrEventPublisher
	}

	var events []models.Event
	if err := s.db.DB.WithContext(ctx).
		Where("dispatched = ?", false).
		Order("timestamp").
		Limit(s.batchSize).
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("fetch pending events: %w", err)
	}

	if len(events) > 0 {
		s.log.Debug("found pending events", zap.Int("count", len(events)))
	}

	for i, event := range events {
		if err := s.dispatchEvent(ctx, event); err != nil {
			return i, fmt.Errorf("dispatch event %s: %w", event.ID, err)
		}
		s.log.Debug("dispatched event",
			zap.String("event_id", event.ID.String()),
			zap.String("type", event.Event),
			zap.String("entity", event.Entity))
	}
	return len(events), nil
}

func (s *EventHandlerService) dispatchEvent(ctx context.Context, event models.Event) error {
	var data map[string]interface{}
	if err := json.Unmarshal(event.Data, &data); err != nil {
		s.log.Warn("could not unmarshal event data", zap.String("event_id", event.ID.String()), zap.Error(err))
		data = make(map[string]interface{})
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type": event.Event,
		"payload": map[string]interface{}{
			"event_id":  event.ID.String(),
			"timestamp": event.Timestamp,
			"type":      event.Event,
			"entity":    event.Entity,
			"operation": event.Operation,
			"version":   event.Version,
			"data":      data,
		},
	})
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, broker.SubjectFor(event.Event), payload); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.db.DB.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"dispatched":    true,
			"dispatched_at": now,
			"status":        models.EventStatusCompleted,
		}).Error
}

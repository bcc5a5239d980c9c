package audit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

const (
	// eventChannelSize is the buffer size for the async event channel.
	// If the channel is full, events are dropped with a warning log.
	eventChannelSize = 256
)

// Actions recorded by the API.
const (
	ActionUserRegister  = "user.register"
	ActionLoginFailure  = "user.login.failure"
	ActionArticleCreate = "article.create"
	ActionArticleDelete = "article.delete"
	ActionCommentCreate = "comment.create"
	ActionCommentDelete = "comment.delete"
)

// Event represents an audit event to be logged.
type Event struct {
	Action    string         // e.g. "comment.delete"
	Actor     string         // username, empty for anonymous actions
	Entity    string         // "user", "article", "comment"
	EntityKey string         // username or numeric id of the affected row
	Payload   map[string]any // additional context data
}

// Store persists audit events.
type Store interface {
	Insert(ctx context.Context, event Event) error
}

// Service provides asynchronous audit logging. Events are sent to a buffered
// channel and written to the database by a background goroutine.
type Service struct {
	repo         Store
	eventCh      chan Event
	done         chan struct{}
	droppedCount atomic.Uint64 // count of events dropped due to full channel
}

// NewService creates a new audit Service with the given store.
// Call Start() to begin processing events, and Shutdown() to drain and stop.
func NewService(repo Store) *Service {
	return &Service{
		repo:    repo,
		eventCh: make(chan Event, eventChannelSize),
		done:    make(chan struct{}),
	}
}

// Log sends an audit event for asynchronous persistence. It never blocks the
// caller. If the internal channel is full, the event is dropped and a warning
// is logged. Log on a nil *Service is a no-op.
func (s *Service) Log(ctx context.Context, event Event) {
	if s == nil {
		return
	}
	select {
	case s.eventCh <- event:
	default:
		dropped := s.droppedCount.Add(1)
		slog.Warn("audit event channel full, dropping event",
			"action", event.Action,
			"actor", event.Actor,
			"entity", event.Entity,
			"entity_key", event.EntityKey,
			"total_dropped", dropped,
		)
	}
}

// Start begins the background goroutine that reads events from the channel
// and writes them to the database. Must be called once after NewService.
func (s *Service) Start() {
	go s.processEvents()
}

// Shutdown signals the background goroutine to stop, drains any remaining
// events in the channel, and waits for completion. If ctx expires first a
// warning is logged, but Shutdown still waits for the drain to finish.
func (s *Service) Shutdown(ctx context.Context) {
	close(s.eventCh)

	select {
	case <-s.done:
		slog.Info("audit service shutdown complete")
	case <-ctx.Done():
		slog.Warn("audit service shutdown timeout, still waiting for drain")
		<-s.done
	}
}

func (s *Service) processEvents() {
	defer close(s.done)

	for event := range s.eventCh {
		s.writeEvent(event)
	}
}

// writeEvent inserts a single event. Errors are logged and never propagated.
func (s *Service) writeEvent(event Event) {
	// The originating request context may already be cancelled.
	ctx := context.Background()

	if err := s.repo.Insert(ctx, event); err != nil {
		slog.Error("failed to write audit event",
			"action", event.Action,
			"actor", event.Actor,
			"entity", event.Entity,
			"entity_key", event.EntityKey,
			"error", err,
		)
	}
}

// DroppedCount returns the total number of events dropped since service start.
func (s *Service) DroppedCount() uint64 {
	return s.droppedCount.Load()
}

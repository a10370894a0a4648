package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/events"
)

type actorKey struct{}

// ContextWithActor records the admin performing the request.
func ContextWithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

func actorFromContext(ctx context.Context) events.Actor {
	username, _ := ctx.Value(actorKey{}).(string)
	return events.Actor{Username: username}
}

// publisher fills event metadata and logs handler failures instead of
// failing the write that triggered them.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger, now: time.Now}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if p.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actorFromContext(ctx),
		Timestamp: p.now().UTC(),
		Payload:   payload,
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(eventType)),
			zap.String("subject_id", subjectID),
			zap.Error(err))
	}
}

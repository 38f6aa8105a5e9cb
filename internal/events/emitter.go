package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is one structured trace point: where it happened, what
// happened, and any request-scoped data worth keeping.
type Event struct {
	Location  string
	Message   string
	Data      map[string]any
	Timestamp time.Time
}

// Emitter delivers events to a configurable sink. Delivery is
// fire-and-forget: no caller behavior may depend on it succeeding.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// LogEmitter writes events to the shared logrus logger.
type LogEmitter struct {
	log *logrus.Logger
}

func NewLogEmitter(log *logrus.Logger) *LogEmitter {
	return &LogEmitter{log: log}
}

func (l *LogEmitter) Emit(_ context.Context, e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	fields := logrus.Fields{
		"location": e.Location,
		"ts":       e.Timestamp.Format(time.RFC3339Nano),
	}
	for k, v := range e.Data {
		fields[k] = v
	}
	l.log.WithFields(fields).Info(e.Message)
}

// NopEmitter discards everything. Handy default for tests.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, Event) {}

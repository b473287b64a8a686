package main

import (
	"context"

	"github.com/finpulse/finpulse"
	"go.uber.org/zap"
)

// zapActivitySink forwards auth events to the structured log. Sinks run
// best-effort; returning nil keeps event delivery from ever blocking a
// login.
type zapActivitySink struct {
	log *zap.Logger
}

func (s zapActivitySink) Record(_ context.Context, event finpulse.ActivityEvent) error {
	s.log.Info("auth activity",
		zap.String("event", string(event.EventType)),
		zap.String("user_id", event.UserID),
		zap.Time("occurred_at", event.OccurredAt),
		zap.Any("metadata", event.Metadata),
	)
	return nil
}

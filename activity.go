package finpulse

import (
	"context"
	"time"
)

type ActivityEventType string

const (
	ActivityEventLoginSuccess ActivityEventType = "auth.login.success"
	ActivityEventLoginFailure ActivityEventType = "auth.login.failure"
	ActivityEventSignup       ActivityEventType = "auth.signup"
	ActivityEventOnboarded    ActivityEventType = "auth.onboarding.completed"
)

// ActivityEvent describes an auth event for audit purposes
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	OccurredAt time.Time
	Metadata   map[string]any
}

// ActivitySink receives auth events. Sinks run best-effort: errors are
// logged by the caller and never fail the operation that emitted the event.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error { return nil }

func normalizeActivitySink(sink ActivitySink) ActivitySink {
	if sink == nil {
		return noopActivitySink{}
	}
	return sink
}

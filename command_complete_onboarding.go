package finpulse

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// CompleteOnboardingMessage marks a user as onboarded. The transition is
// one-way and idempotent: completing onboarding twice is a no-op, and
// nothing in this package can take an onboarded user back to pending.
type CompleteOnboardingMessage struct {
	UserID string `json:"user_id"`
}

func (e CompleteOnboardingMessage) Type() string { return "user.onboarding.complete" }

type CompleteOnboardingHandler struct {
	repo RepositoryManager
	sink ActivitySink
}

func NewCompleteOnboardingHandler(repo RepositoryManager) *CompleteOnboardingHandler {
	return &CompleteOnboardingHandler{
		repo: repo,
		sink: noopActivitySink{},
	}
}

func (h *CompleteOnboardingHandler) WithActivitySink(sink ActivitySink) *CompleteOnboardingHandler {
	h.sink = normalizeActivitySink(sink)
	return h
}

func (h *CompleteOnboardingHandler) Execute(ctx context.Context, event CompleteOnboardingMessage) error {
	id, err := uuid.Parse(event.UserID)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid user id")
	}

	user, err := h.repo.Users().GetByUserID(ctx, id.String())
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "user not found")
	}

	if user.Onboarded {
		return nil
	}

	if err := h.repo.Users().MarkOnboarded(ctx, id); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not mark user onboarded")
	}

	_ = normalizeActivitySink(h.sink).Record(ctx, ActivityEvent{
		EventType:  ActivityEventOnboarded,
		UserID:     id.String(),
		OccurredAt: time.Now(),
	})

	return nil
}

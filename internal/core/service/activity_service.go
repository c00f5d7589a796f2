package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

const defaultFeedLimit = 50

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService backed by the given repository.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single activity entry, filling in the id and timestamp
// when the caller left them empty.
func (s *activityService) Record(ctx context.Context, entry domain.ActivityEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	if entry.Actor == "" {
		entry.Actor = "anonymous"
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Feed returns the most recent entries plus per-action totals.
func (s *activityService) Feed(ctx context.Context, limit int) (*ports.ActivityFeed, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("activity feed: %w", err)
	}

	counts, err := s.repo.CountByAction(ctx)
	if err != nil {
		return nil, fmt.Errorf("activity counts: %w", err)
	}

	return &ports.ActivityFeed{Entries: entries, Counts: counts}, nil
}

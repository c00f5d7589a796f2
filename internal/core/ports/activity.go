package ports

import (
	"context"

	"github.com/syncspace/edge-gateway/internal/core/domain"
)

// ActivityRepository handles persistence of auth-surface activity entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
	CountByAction(ctx context.Context) (map[string]int64, error)
}

// ActivityFeed is the admin view: recent entries plus per-action totals.
type ActivityFeed struct {
	Entries []domain.ActivityEntry `json:"entries"`
	Counts  map[string]int64       `json:"counts"`
}

// ActivityService records and serves auth-surface activity.
type ActivityService interface {
	Record(ctx context.Context, entry domain.ActivityEntry) error
	Feed(ctx context.Context, limit int) (*ActivityFeed, error)
}

package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var NowFunc = time.Now // mockable

// defaultRecentLimit caps the dashboard's recent-activity feed.
const defaultRecentLimit = 10

type (
	Repository interface {
		AppendEntry(ctx context.Context, e Entry) (Entry, error)
		// QueryRecentEntries returns the newest entries first, at most limit of them.
		QueryRecentEntries(ctx context.Context, limit int) ([]Entry, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Log appends an entry to the audit trail.
func (svc *Service) Log(ctx context.Context, typ Type, actor, description string) (Entry, error) {
	return svc.repo.AppendEntry(ctx, Entry{
		ID:          uuid.New().String(),
		Type:        typ,
		Description: description,
		User:        actor,
		Timestamp:   NowFunc().UTC(),
	})
}

// Recent returns the latest entries, newest first.
func (svc *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return svc.repo.QueryRecentEntries(ctx, limit)
}

package dummydb

import (
	"context"

	"github.com/scngmai/damayan/core/activity"
)

type activityRepository struct {
	db *activityTable
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) activity.Repository {
	return &activityRepository{db: db.activity}
}

func (repo *activityRepository) AppendEntry(_ context.Context, e activity.Entry) (activity.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.entries = append([]activity.Entry{e}, repo.db.entries...)
	return e, nil
}

func (repo *activityRepository) QueryRecentEntries(_ context.Context, limit int) ([]activity.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if limit > len(repo.db.entries) {
		limit = len(repo.db.entries)
	}
	entries := make([]activity.Entry, limit)
	copy(entries, repo.db.entries[:limit])
	return entries, nil
}

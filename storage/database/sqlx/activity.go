package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/activity"
)

type activityRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *sqlx.DB) activity.Repository {
	return &activityRepository{db: db}
}

func (repo activityRepository) AppendEntry(ctx context.Context, e activity.Entry) (activity.Entry, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO activities (id, type, description, actor, created_at)
VALUES (:id, :type, :description, :actor, :created_at)`, e)
	if err != nil {
		return activity.Entry{}, errors.Wrap(err, "appending activity")
	}
	return e, nil
}

func (repo activityRepository) QueryRecentEntries(ctx context.Context, limit int) ([]activity.Entry, error) {
	var entries []activity.Entry
	err := repo.db.SelectContext(ctx, &entries,
		`SELECT id, type, description, actor, created_at FROM activities ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying activities")
	}
	return entries, nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/milestone"
)

type milestoneRepository struct {
	db *sqlx.DB
}

var _ milestone.Repository = (*milestoneRepository)(nil) // interface compliance check

func NewMilestoneRepository(db *sqlx.DB) milestone.Repository {
	return &milestoneRepository{db: db}
}

func (repo milestoneRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return milestone.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const milestoneColumns = `id, age, amount, description, is_active, created_at, updated_at`

func (repo milestoneRepository) CreateMilestone(ctx context.Context, ms milestone.Milestone) (milestone.Milestone, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO milestones (`+milestoneColumns+`)
VALUES (:id, :age, :amount, :description, :is_active, :created_at, :updated_at)`, ms)
	if err != nil {
		return milestone.Milestone{}, errors.Wrap(err, "creating milestone")
	}
	return ms, nil
}

func (repo milestoneRepository) QueryAllMilestones(ctx context.Context) ([]milestone.Milestone, error) {
	var milestones []milestone.Milestone
	err := repo.db.SelectContext(ctx, &milestones, `SELECT `+milestoneColumns+` FROM milestones ORDER BY age`)
	if err != nil {
		return nil, errors.Wrap(err, "querying milestones")
	}
	return milestones, nil
}

func (repo milestoneRepository) GetMilestoneByID(ctx context.Context, id string) (milestone.Milestone, error) {
	var ms milestone.Milestone
	err := repo.db.GetContext(ctx, &ms, `SELECT `+milestoneColumns+` FROM milestones WHERE id = $1`, id)
	if err != nil {
		return milestone.Milestone{}, repo.trapNoRowsErr(err, "finding milestone")
	}
	return ms, nil
}

func (repo milestoneRepository) UpdateMilestone(ctx context.Context, ms milestone.Milestone) (milestone.Milestone, error) {
	res, err := repo.db.NamedExecContext(ctx, `
UPDATE milestones
SET age         = :age,
    amount      = :amount,
    description = :description,
    is_active   = :is_active,
    updated_at  = :updated_at
WHERE id = :id`, ms)
	if err != nil {
		return milestone.Milestone{}, errors.Wrap(err, "updating milestone")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return milestone.Milestone{}, milestone.ErrNotFound
	}
	return ms, nil
}

func (repo milestoneRepository) DeleteMilestonesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM milestones WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting milestones")
	}
	return nil
}

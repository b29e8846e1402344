package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/officer"
)

type officerRepository struct {
	db *sqlx.DB
}

var _ officer.Repository = (*officerRepository)(nil) // interface compliance check

func NewOfficerRepository(db *sqlx.DB) officer.Repository {
	return &officerRepository{db: db}
}

func (repo officerRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return officer.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const officerColumns = `id, name, position, email, phone, profile_picture, member_id, created_at, updated_at`

func (repo officerRepository) CreateOfficer(ctx context.Context, o officer.Officer) (officer.Officer, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO officers (`+officerColumns+`)
VALUES (:id, :name, :position, :email, :phone, :profile_picture, :member_id, :created_at, :updated_at)`, o)
	if err != nil {
		return officer.Officer{}, errors.Wrap(err, "creating officer")
	}
	return o, nil
}

func (repo officerRepository) QueryAllOfficers(ctx context.Context) ([]officer.Officer, error) {
	var officers []officer.Officer
	err := repo.db.SelectContext(ctx, &officers, `SELECT `+officerColumns+` FROM officers ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "querying officers")
	}
	return officers, nil
}

func (repo officerRepository) GetOfficerByID(ctx context.Context, id string) (officer.Officer, error) {
	var o officer.Officer
	err := repo.db.GetContext(ctx, &o, `SELECT `+officerColumns+` FROM officers WHERE id = $1`, id)
	if err != nil {
		return officer.Officer{}, repo.trapNoRowsErr(err, "finding officer")
	}
	return o, nil
}

func (repo officerRepository) UpdateOfficer(ctx context.Context, o officer.Officer) (officer.Officer, error) {
	res, err := repo.db.NamedExecContext(ctx, `
UPDATE officers
SET name            = :name,
    position        = :position,
    email           = :email,
    phone           = :phone,
    profile_picture = :profile_picture,
    member_id       = :member_id,
    updated_at      = :updated_at
WHERE id = :id`, o)
	if err != nil {
		return officer.Officer{}, errors.Wrap(err, "updating officer")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return officer.Officer{}, officer.ErrNotFound
	}
	return o, nil
}

func (repo officerRepository) DeleteOfficersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM officers WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting officers")
	}
	return nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const userColumns = `id, name, email, role, is_active, member_id, password_hash, created_at, updated_at, last_login`

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	q := `SELECT COUNT(*) FROM users WHERE email = ?`
	args := []interface{}{email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		var err error
		if q, args, err = sqlx.In(q+` AND id NOT IN (?)`, email, ids); err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking email")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (:id, :name, :email, :role, :is_active, :member_id, :password_hash, :created_at, :updated_at, :last_login)`, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := repo.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return usr, nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by email")
	}
	return usr, nil
}

func (repo userRepository) FilterUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += ` AND (name ILIKE ? OR email ILIKE ?)`
		args = append(args, args[len(args)-1])
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		q += ` AND role = ?`
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		q += ` AND is_active = ?`
	}
	if !filter.CreatedFrom.IsZero() {
		args = append(args, filter.CreatedFrom)
		q += ` AND created_at >= ?`
	}
	if !filter.CreatedTo.IsZero() {
		args = append(args, filter.CreatedTo)
		q += ` AND created_at <= ?`
	}
	q += ` ORDER BY email`

	var users []user.User
	if err := repo.db.SelectContext(ctx, &users, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return users, nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.NamedExecContext(ctx, `
UPDATE users
SET name          = :name,
    email         = :email,
    role          = :role,
    is_active     = :is_active,
    member_id     = :member_id,
    password_hash = :password_hash,
    updated_at    = :updated_at,
    last_login    = :last_login
WHERE id = :id`, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/bulletin"
)

type bulletinRepository struct {
	db *sqlx.DB
}

var _ bulletin.Repository = (*bulletinRepository)(nil) // interface compliance check

func NewBulletinRepository(db *sqlx.DB) bulletin.Repository {
	return &bulletinRepository{db: db}
}

func (repo bulletinRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return bulletin.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const postColumns = `id, title, content, author, posted_at, is_active, created_at, updated_at`

func (repo bulletinRepository) CreatePost(ctx context.Context, p bulletin.Post) (bulletin.Post, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO bulletin_posts (`+postColumns+`)
VALUES (:id, :title, :content, :author, :posted_at, :is_active, :created_at, :updated_at)`, p)
	if err != nil {
		return bulletin.Post{}, errors.Wrap(err, "creating post")
	}
	return p, nil
}

func (repo bulletinRepository) QueryAllPosts(ctx context.Context) ([]bulletin.Post, error) {
	var posts []bulletin.Post
	err := repo.db.SelectContext(ctx, &posts, `SELECT `+postColumns+` FROM bulletin_posts ORDER BY posted_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}
	return posts, nil
}

func (repo bulletinRepository) GetPostByID(ctx context.Context, id string) (bulletin.Post, error) {
	var p bulletin.Post
	err := repo.db.GetContext(ctx, &p, `SELECT `+postColumns+` FROM bulletin_posts WHERE id = $1`, id)
	if err != nil {
		return bulletin.Post{}, repo.trapNoRowsErr(err, "finding post")
	}
	return p, nil
}

func (repo bulletinRepository) UpdatePost(ctx context.Context, p bulletin.Post) (bulletin.Post, error) {
	res, err := repo.db.NamedExecContext(ctx, `
UPDATE bulletin_posts
SET title      = :title,
    content    = :content,
    author     = :author,
    posted_at  = :posted_at,
    is_active  = :is_active,
    updated_at = :updated_at
WHERE id = :id`, p)
	if err != nil {
		return bulletin.Post{}, errors.Wrap(err, "updating post")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bulletin.Post{}, bulletin.ErrNotFound
	}
	return p, nil
}

func (repo bulletinRepository) DeletePostsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM bulletin_posts WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting posts")
	}
	return nil
}

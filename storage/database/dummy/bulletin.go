package dummydb

import (
	"context"
	"sort"

	"github.com/scngmai/damayan/core/bulletin"
)

type bulletinRepository struct {
	db *bulletinTable
}

var _ bulletin.Repository = (*bulletinRepository)(nil) // interface compliance check

func NewBulletinRepository(db *DB) bulletin.Repository {
	return &bulletinRepository{db: db.bulletin}
}

func (repo *bulletinRepository) query() []bulletin.Post {
	posts := make([]bulletin.Post, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })
	return posts
}

func (repo *bulletinRepository) CreatePost(_ context.Context, p bulletin.Post) (bulletin.Post, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *bulletinRepository) QueryAllPosts(_ context.Context) ([]bulletin.Post, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *bulletinRepository) GetPostByID(_ context.Context, id string) (bulletin.Post, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return bulletin.Post{}, bulletin.ErrNotFound
}

func (repo *bulletinRepository) UpdatePost(_ context.Context, p bulletin.Post) (bulletin.Post, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[p.ID]; !ok {
		return bulletin.Post{}, bulletin.ErrNotFound
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *bulletinRepository) DeletePostsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

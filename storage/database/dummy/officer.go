package dummydb

import (
	"context"
	"sort"

	"github.com/scngmai/damayan/core/officer"
)

type officerRepository struct {
	db *officerTable
}

var _ officer.Repository = (*officerRepository)(nil) // interface compliance check

func NewOfficerRepository(db *DB) officer.Repository {
	return &officerRepository{db: db.officer}
}

func (repo *officerRepository) query() []officer.Officer {
	officers := make([]officer.Officer, 0, len(repo.db.table))
	for _, o := range repo.db.table {
		officers = append(officers, *o)
	}
	sort.Slice(officers, func(i, j int) bool { return officers[i].Name < officers[j].Name })
	return officers
}

func (repo *officerRepository) CreateOfficer(_ context.Context, o officer.Officer) (officer.Officer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[o.ID] = &o
	return o, nil
}

func (repo *officerRepository) QueryAllOfficers(_ context.Context) ([]officer.Officer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *officerRepository) GetOfficerByID(_ context.Context, id string) (officer.Officer, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if o, ok := repo.db.table[id]; ok {
		return *o, nil
	}
	return officer.Officer{}, officer.ErrNotFound
}

func (repo *officerRepository) UpdateOfficer(_ context.Context, o officer.Officer) (officer.Officer, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[o.ID]; !ok {
		return officer.Officer{}, officer.ErrNotFound
	}
	repo.db.table[o.ID] = &o
	return o, nil
}

func (repo *officerRepository) DeleteOfficersByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

package dummydb

import (
	"context"
	"sort"

	"github.com/scngmai/damayan/core/milestone"
)

type milestoneRepository struct {
	db *milestoneTable
}

var _ milestone.Repository = (*milestoneRepository)(nil) // interface compliance check

func NewMilestoneRepository(db *DB) milestone.Repository {
	return &milestoneRepository{db: db.milestone}
}

func (repo *milestoneRepository) query() []milestone.Milestone {
	milestones := make([]milestone.Milestone, 0, len(repo.db.table))
	for _, ms := range repo.db.table {
		milestones = append(milestones, *ms)
	}
	sort.Slice(milestones, func(i, j int) bool { return milestones[i].Age < milestones[j].Age })
	return milestones
}

func (repo *milestoneRepository) CreateMilestone(_ context.Context, ms milestone.Milestone) (milestone.Milestone, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[ms.ID] = &ms
	return ms, nil
}

func (repo *milestoneRepository) QueryAllMilestones(_ context.Context) ([]milestone.Milestone, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *milestoneRepository) GetMilestoneByID(_ context.Context, id string) (milestone.Milestone, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ms, ok := repo.db.table[id]; ok {
		return *ms, nil
	}
	return milestone.Milestone{}, milestone.ErrNotFound
}

func (repo *milestoneRepository) UpdateMilestone(_ context.Context, ms milestone.Milestone) (milestone.Milestone, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ms.ID]; !ok {
		return milestone.Milestone{}, milestone.ErrNotFound
	}
	repo.db.table[ms.ID] = &ms
	return ms, nil
}

func (repo *milestoneRepository) DeleteMilestonesByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

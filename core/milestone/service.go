package milestone

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("milestone not found")
	NowFunc     = time.Now // mockable
)

type (
	Repository interface {
		CreateMilestone(ctx context.Context, ms Milestone) (Milestone, error)
		QueryAllMilestones(ctx context.Context) ([]Milestone, error)
		GetMilestoneByID(ctx context.Context, id string) (Milestone, error)
		UpdateMilestone(ctx context.Context, ms Milestone) (Milestone, error)
		DeleteMilestonesByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nm NewMilestone) (Milestone, error) {
	now := NowFunc().UTC()
	ms := Milestone{
		ID:          uuid.New().String(),
		Age:         nm.Age,
		Amount:      nm.Amount,
		Description: nm.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateMilestone(ctx, ms)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Milestone, error) {
	return svc.repo.QueryAllMilestones(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Milestone, error) {
	return svc.repo.GetMilestoneByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, um UpdateMilestone) (Milestone, error) {
	ms, err := svc.repo.GetMilestoneByID(ctx, id)
	if err != nil {
		return Milestone{}, err
	}

	if um.Age != nil {
		ms.Age = *um.Age
	}
	if um.Amount != nil {
		ms.Amount = *um.Amount
	}
	if um.Description != "" {
		ms.Description = um.Description
	}
	if um.IsActive != nil {
		ms.IsActive = *um.IsActive
	}
	ms.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdateMilestone(ctx, ms)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteMilestonesByID(ctx, ids...)
}

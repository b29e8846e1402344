package officer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("officer not found")
	NowFunc     = time.Now // mockable
)

type (
	Repository interface {
		CreateOfficer(ctx context.Context, o Officer) (Officer, error)
		QueryAllOfficers(ctx context.Context) ([]Officer, error)
		GetOfficerByID(ctx context.Context, id string) (Officer, error)
		UpdateOfficer(ctx context.Context, o Officer) (Officer, error)
		DeleteOfficersByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, no NewOfficer) (Officer, error) {
	now := NowFunc().UTC()
	o := Officer{
		ID:        uuid.New().String(),
		Name:      no.Name,
		Position:  no.Position,
		Email:     no.Email,
		Phone:     no.Phone,
		MemberID:  no.MemberID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateOfficer(ctx, o)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Officer, error) {
	return svc.repo.QueryAllOfficers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Officer, error) {
	return svc.repo.GetOfficerByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uo UpdateOfficer) (Officer, error) {
	o, err := svc.repo.GetOfficerByID(ctx, id)
	if err != nil {
		return Officer{}, err
	}

	if uo.Name != "" {
		o.Name = uo.Name
	}
	if uo.Position != "" {
		o.Position = uo.Position
	}
	if uo.Email != "" {
		o.Email = uo.Email
	}
	if uo.Phone != nil {
		o.Phone = *uo.Phone
	}
	if uo.MemberID != nil {
		o.MemberID = *uo.MemberID
	}
	o.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdateOfficer(ctx, o)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteOfficersByID(ctx, ids...)
}

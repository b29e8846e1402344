package bulletin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("bulletin post not found")
	NowFunc     = time.Now // mockable
)

type (
	Repository interface {
		CreatePost(ctx context.Context, p Post) (Post, error)
		// QueryAllPosts returns posts in reverse chronological order.
		QueryAllPosts(ctx context.Context) ([]Post, error)
		GetPostByID(ctx context.Context, id string) (Post, error)
		UpdatePost(ctx context.Context, p Post) (Post, error)
		DeletePostsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, np NewPost) (Post, error) {
	now := NowFunc().UTC()
	p := Post{
		ID:        uuid.New().String(),
		Title:     np.Title,
		Content:   np.Content,
		Author:    np.Author,
		Date:      now,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreatePost(ctx, p)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Post, error) {
	return svc.repo.QueryAllPosts(ctx)
}

// QueryActive returns only the posts currently published.
func (svc *Service) QueryActive(ctx context.Context) ([]Post, error) {
	posts, err := svc.repo.QueryAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Post, error) {
	return svc.repo.GetPostByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, up UpdatePost) (Post, error) {
	p, err := svc.repo.GetPostByID(ctx, id)
	if err != nil {
		return Post{}, err
	}

	if up.Title != "" {
		p.Title = up.Title
	}
	if up.Content != "" {
		p.Content = up.Content
	}
	if up.IsActive != nil {
		p.IsActive = *up.IsActive
	}
	p.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdatePost(ctx, p)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeletePostsByID(ctx, ids...)
}

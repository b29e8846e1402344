package bulletin

import (
	"time"

	"github.com/scngmai/damayan/core"
)

// Post is a bulletin-board announcement.
type Post struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Author    string    `json:"author" db:"author"`
	Date      time.Time `json:"date" db:"posted_at"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type NewPost struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required"`
}

func (np *NewPost) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Author = core.CleanString(np.Author)
	return core.Validate.Struct(np)
}

type UpdatePost struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsActive *bool  `json:"is_active"`
}

func (up *UpdatePost) Validate() error {
	up.Title = core.CleanString(up.Title)
	return core.Validate.Struct(up)
}

package milestone

import (
	"time"

	"github.com/scngmai/damayan/core"
)

// Milestone is an age-triggered one-time benefit amount, independent of
// delinquency.
type Milestone struct {
	ID          string    `json:"id" db:"id"`
	Age         int       `json:"age" db:"age"`
	Amount      int       `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type NewMilestone struct {
	Age         int    `json:"age" validate:"required,min=1,max=150"`
	Amount      int    `json:"amount" validate:"required,min=1"`
	Description string `json:"description" validate:"required"`
}

func (nm *NewMilestone) Validate() error {
	nm.Description = core.CleanString(nm.Description)
	return core.Validate.Struct(nm)
}

type UpdateMilestone struct {
	Age         *int   `json:"age" validate:"omitempty,min=1,max=150"`
	Amount      *int   `json:"amount" validate:"omitempty,min=1"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (um *UpdateMilestone) Validate() error {
	um.Description = core.CleanString(um.Description)
	return core.Validate.Struct(um)
}

package officer

import (
	"time"

	"github.com/scngmai/damayan/core"
)

// Officer is a roster entry for an elected or appointed position. It may be
// linked to the Member record of the person holding it.
type Officer struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Position       string    `json:"position" db:"position"`
	Email          string    `json:"email,omitempty" db:"email"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	ProfilePicture string    `json:"profile_picture,omitempty" db:"profile_picture"`
	MemberID       string    `json:"member_id,omitempty" db:"member_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type NewOfficer struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	MemberID string `json:"member_id"`
}

func (no *NewOfficer) Validate() error {
	no.Name = core.CleanString(no.Name)
	no.Position = core.CleanString(no.Position)
	no.Email = core.CleanString(no.Email, true /* lower */)
	return core.Validate.Struct(no)
}

type UpdateOfficer struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	MemberID *string `json:"member_id"`
}

func (uo *UpdateOfficer) Validate() error {
	uo.Name = core.CleanString(uo.Name)
	uo.Position = core.CleanString(uo.Position)
	uo.Email = core.CleanString(uo.Email, true /* lower */)
	return core.Validate.Struct(uo)
}

package user

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/access"
)

// User is a staff/officer account that can sign in to the system. Its Role
// drives every authorization decision (see core/access). A user may be linked
// to the Member record it belongs to.
type User struct {
	ID           string      `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	Role         access.Role `json:"role" db:"role"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	MemberID     string      `json:"member_id,omitempty" db:"member_id"`
	PasswordHash []byte      `json:"-" db:"password_hash"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"` // UTC
	LastLogin    time.Time   `json:"last_login" db:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	return u.Role == access.RoleAdmin
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string      `json:"name" validate:"required"`
	Email           string      `json:"email" validate:"required,email"`
	Role            access.Role `json:"role" validate:"required,accessrole"`
	MemberID        string      `json:"member_id"`
	Password        string      `json:"password" validate:"required"`
	PasswordConfirm string      `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nu *NewUser) Validate(ctx context.Context, svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string      `json:"name"`
	Email           string      `json:"email" validate:"omitempty,email"`
	Role            access.Role `json:"role" validate:"omitempty,accessrole"`
	IsActive        *bool       `json:"is_active"`
	MemberID        *string     `json:"member_id"`
	Password        string      `json:"password" validate:"omitempty"`
	PasswordConfirm string      `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(ctx context.Context, origUsr User, svc Service) error {
	uu.Name = core.CleanString(uu.Name)
	if uu.Name == "" {
		uu.Name = origUsr.Name
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }

// QueryFilter narrows a user query. Fields are ANDed; Search does a
// case-insensitive match on one of User.Name or User.Email.
type QueryFilter struct {
	Search      string      `query:"search"`
	Role        access.Role `query:"role"`
	IsActive    *bool       `query:"is_active"`
	CreatedFrom time.Time   `query:"created_from"`
	CreatedTo   time.Time   `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == "" && qf.IsActive == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

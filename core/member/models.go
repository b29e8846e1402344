package member

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/scngmai/damayan/core"
)

// Status is a member's standing with the association.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusDeceased Status = "Deceased"
	StatusDropped  Status = "Dropped"
	StatusServed   Status = "Served"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusDeceased, StatusDropped, StatusServed}

// IsTerminal reports whether the status is never overridden by payment state.
func (s Status) IsTerminal() bool {
	return s == StatusDeceased || s == StatusServed
}

func IsValidStatus(s Status) bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Payment is a member's dues record for a single year. A member has at most
// one Payment per year; it is owned by the member and has no independent
// lifecycle. Date may be absent: recorded as paid but undated.
type Payment struct {
	Year   int       `json:"year" db:"year"`
	Date   null.Time `json:"date" db:"paid_at"`
	Amount int       `json:"amount" db:"amount"`
	IsPaid bool      `json:"is_paid" db:"is_paid"`
}

// Member is a registered member of the association.
//
// DelinquentYears and TotalDelinquentAmount are cached derived values: they
// are recomputed from Payments and RegistrationYear on every mutation (see
// Refresh) and never edited by hand.
type Member struct {
	ID                string    `json:"id" db:"id"`
	MemberNumber      string    `json:"member_number" db:"member_number"`
	Name              string    `json:"name" db:"name"`
	Email             string    `json:"email,omitempty" db:"email"`
	Phone             string    `json:"phone,omitempty" db:"phone"`
	Address           string    `json:"address,omitempty" db:"address"`
	Notes             string    `json:"notes,omitempty" db:"notes"`
	Status            Status    `json:"status" db:"status"`
	DateOfBirth       null.Time `json:"date_of_birth" db:"date_of_birth"`
	RegistrationYear  int       `json:"registration_year" db:"registration_year"`
	RegistrationDate  time.Time `json:"registration_date" db:"registration_date"`
	ProfilePicture    string    `json:"profile_picture,omitempty" db:"profile_picture"`
	HealthCertificate string    `json:"health_certificate,omitempty" db:"health_certificate"`

	Payments []Payment `json:"payments" db:"-"`

	DelinquentYears       int `json:"delinquent_years" db:"delinquent_years"`
	TotalDelinquentAmount int `json:"total_delinquent_amount" db:"total_delinquent_amount"`

	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// PaymentFor returns the payment recorded for the given year, if any.
func (m *Member) PaymentFor(year int) (Payment, bool) {
	for _, p := range m.Payments {
		if p.Year == year {
			return p, true
		}
	}
	return Payment{}, false
}

// PaidFor reports whether a paid payment record exists for the given year.
func (m *Member) PaidFor(year int) bool {
	p, ok := m.PaymentFor(year)
	return ok && p.IsPaid
}

// NewMember contains information needed to register a new Member.
type NewMember struct {
	Name             string    `json:"name" validate:"required"`
	Email            string    `json:"email" validate:"omitempty,email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	Notes            string    `json:"notes"`
	DateOfBirth      null.Time `json:"date_of_birth"`
	MemberNumber     string    `json:"member_number" validate:"omitempty,membernumber"` // generated when empty
	RegistrationYear int       `json:"registration_year" validate:"omitempty,min=1900"` // defaults to the current year
}

func (nm *NewMember) Validate() error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.MemberNumber = core.CleanString(nm.MemberNumber)
	return core.Validate.Struct(nm)
}

// UpdateMember defines what information may be provided to modify an existing
// Member. Zero-valued fields are left untouched.
type UpdateMember struct {
	Name        string    `json:"name"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Phone       *string   `json:"phone"`
	Address     *string   `json:"address"`
	Notes       *string   `json:"notes"`
	DateOfBirth null.Time `json:"date_of_birth"`
	Status      Status    `json:"status" validate:"omitempty,memberstatus"`
}

func (um *UpdateMember) Validate() error {
	um.Name = core.CleanString(um.Name)
	um.Email = core.CleanString(um.Email, true /* lower */)
	return core.Validate.Struct(um)
}

// NewPayment records dues for a single year. An existing record for the same
// year is replaced.
type NewPayment struct {
	Year   int       `json:"year" validate:"required,min=1900"`
	Amount int       `json:"amount" validate:"required,min=1"`
	Date   null.Time `json:"date"` // defaults to today
}

func (np *NewPayment) Validate() error { return core.Validate.Struct(np) }

// UpdatePayment patches an existing payment record.
type UpdatePayment struct {
	Amount *int      `json:"amount" validate:"omitempty,min=1"`
	Date   null.Time `json:"date"`
	IsPaid *bool     `json:"is_paid"`
}

func (up *UpdatePayment) Validate() error { return core.Validate.Struct(up) }

// QueryFilter narrows a member query. Fields are ANDed; Search does a
// case-insensitive match on name or member number.
type QueryFilter struct {
	Search           string `query:"search"`
	Status           Status `query:"status"`
	RegistrationYear int    `query:"registration_year"`
	Delinquent       *bool  `query:"delinquent"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.RegistrationYear == 0 && qf.Delinquent == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Summary aggregates the roster for the dashboard cards.
type Summary struct {
	TotalMembers         int `json:"total_members"`
	ActiveMembers        int `json:"active_members"`
	InactiveMembers      int `json:"inactive_members"`
	DeceasedMembers      int `json:"deceased_members"`
	DroppedMembers       int `json:"dropped_members"`
	ServedMembers        int `json:"served_members"`
	DelinquentMembers    int `json:"delinquent_members"`
	TotalDelinquentYears int `json:"total_delinquent_years"`
	TotalCollectibles    int `json:"total_collectibles"`
	TotalAnnualFees      int `json:"total_annual_fees"`
}

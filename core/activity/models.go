package activity

import "time"

// Type tags an audit trail entry.
type Type string

const (
	TypeMemberAdded    Type = "member_added"
	TypeMemberDeleted  Type = "member_deleted"
	TypePaymentAdded   Type = "payment_added"
	TypePaymentUpdated Type = "payment_updated"
	TypeStatusChanged  Type = "status_changed"
	TypeProfileUpdated Type = "profile_updated"
	TypeBulletinPosted Type = "bulletin_posted"
	TypeOfficerAdded   Type = "officer_added"
	TypeMilestoneAdded Type = "milestone_added"
	TypeUserManaged    Type = "user_managed"
)

// Entry is one line of the append-only audit trail. Entries are written on
// every mutation and never edited.
type Entry struct {
	ID          string    `json:"id" db:"id"`
	Type        Type      `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	User        string    `json:"user" db:"actor"`
	Timestamp   time.Time `json:"timestamp" db:"created_at"` // UTC
}

package member

import (
	"fmt"
	"math/rand"
	"time"
)

// Fees, in whole pesos. The annual fee is treated as constant across all
// years when computing delinquent amounts, even though it is the sum of the
// mortuary and operational portions and could change historically.
const (
	AnnualFee      = 780
	MortuaryFee    = 680
	OperationalFee = 100
)

var (
	NowFunc  = time.Now  // mockable
	randFunc = rand.Intn // mockable
)

// PayState describes a single year's dues standing.
type PayState string

const (
	PayStatePaid       PayState = "Paid"
	PayStatePending    PayState = "Pending"
	PayStateDelinquent PayState = "Delinquent"
)

// UnpaidYears returns, in ascending order, every year from the one after
// registration through currentYear for which no paid payment record exists.
// The registration year itself is a grace period and is never counted.
// Empty when the member registered in (or after) currentYear.
func UnpaidYears(m Member, currentYear int) []int {
	var unpaid []int
	for year := m.RegistrationYear + 1; year <= currentYear; year++ {
		if !m.PaidFor(year) {
			unpaid = append(unpaid, year)
		}
	}
	return unpaid
}

// DelinquentAmount is the total owed for unpaid years at the flat annual fee.
func DelinquentAmount(m Member, currentYear int) int {
	return len(UnpaidYears(m, currentYear)) * AnnualFee
}

// NextStatus derives the member's status from its payment history.
// Deceased and Served are terminal and always kept. Otherwise: 4+ unpaid
// years means Dropped; 3 unpaid years, or an unpaid current year, means
// Inactive; at most 2 unpaid years with the current year paid means Active.
func NextStatus(m Member, currentYear int) Status {
	if m.Status.IsTerminal() {
		return m.Status
	}

	unpaid := len(UnpaidYears(m, currentYear))
	currentYearPaid := m.PaidFor(currentYear)

	switch {
	case unpaid >= 4:
		return StatusDropped
	case unpaid >= 3 || !currentYearPaid:
		return StatusInactive
	default:
		return StatusActive
	}
}

// Refresh returns a copy of m with DelinquentYears, TotalDelinquentAmount and
// Status recomputed as of currentYear. It is pure and idempotent; the store
// layer must call it after every mutation that can affect payment history.
func Refresh(m Member, currentYear int) Member {
	unpaid := UnpaidYears(m, currentYear)
	m.DelinquentYears = len(unpaid)
	m.TotalDelinquentAmount = len(unpaid) * AnnualFee
	m.Status = NextStatus(m, currentYear)
	return m
}

// PaymentStatus reports a single year's standing: Paid when a paid record
// exists, Pending for the not-yet-paid current year, Delinquent otherwise.
func PaymentStatus(m Member, year, currentYear int) PayState {
	if m.PaidFor(year) {
		return PayStatePaid
	}
	if year == currentYear {
		return PayStatePending
	}
	return PayStateDelinquent
}

// BirthdayCelebrants filters members whose date of birth falls on today's
// month and day (a recurring annual match, the year is ignored). Members
// without a date of birth are excluded.
func BirthdayCelebrants(members []Member, today time.Time) []Member {
	celebrants := make([]Member, 0)
	for _, m := range members {
		if !m.DateOfBirth.Valid {
			continue
		}
		dob := m.DateOfBirth.Time
		if dob.Month() == today.Month() && dob.Day() == today.Day() {
			celebrants = append(celebrants, m)
		}
	}
	return celebrants
}

// NewMemberNumber generates a member number of the form GM<year><4 digits>.
// Uniqueness is enforced by the store; callers retry on collision.
func NewMemberNumber(year int) string {
	return fmt.Sprintf("GM%d%04d", year, randFunc(10000))
}

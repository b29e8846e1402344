package member

import (
	"context"

	"github.com/pkg/errors"
)

type (
	// YearStanding is a member's dues standing for one year.
	YearStanding struct {
		Year   int      `json:"year"`
		Status PayState `json:"status"`
	}

	// OverviewRow is one line of the member-overview report: the member plus
	// their latest paid year and recent standings.
	OverviewRow struct {
		Member        Member         `json:"member"`
		LatestPayment *Payment       `json:"latest_payment"`
		RecentYears   []YearStanding `json:"recent_years"`
	}

	// MatrixRow is one line of the payment-history matrix.
	MatrixRow struct {
		MemberID     string    `json:"member_id"`
		MemberNumber string    `json:"member_number"`
		Name         string    `json:"name"`
		Payments     []Payment `json:"payments"` // aligned with Matrix.Years
		YearsPaid    int       `json:"years_paid"`
	}

	// Matrix is the full payment-history report over a year range.
	Matrix struct {
		Years      []int       `json:"years"`
		Rows       []MatrixRow `json:"rows"`
		YearTotals []int       `json:"year_totals"` // aligned with Years
	}
)

// recentStandingsSpan is how many trailing years the overview report shows.
const recentStandingsSpan = 3

// Overview builds the member-overview report (all members with their latest
// payment and recent standings).
func (svc *Service) Overview(ctx context.Context) ([]OverviewRow, error) {
	members, err := svc.repo.QueryAllMembers(ctx)
	if err != nil {
		return nil, err
	}

	currentYear := NowFunc().UTC().Year()
	rows := make([]OverviewRow, 0, len(members))
	for _, m := range members {
		row := OverviewRow{Member: m}

		for i := range m.Payments {
			p := m.Payments[i]
			if !p.IsPaid {
				continue
			}
			if row.LatestPayment == nil || p.Year > row.LatestPayment.Year {
				latest := p
				row.LatestPayment = &latest
			}
		}

		for year := currentYear - recentStandingsSpan + 1; year <= currentYear; year++ {
			row.RecentYears = append(row.RecentYears, YearStanding{
				Year:   year,
				Status: PaymentStatus(m, year, currentYear),
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PaymentMatrix builds the payment-history matrix for the inclusive year
// range. Years with no record come back as unpaid zero-amount placeholders so
// rows stay aligned with the year columns.
func (svc *Service) PaymentMatrix(ctx context.Context, startYear, endYear int) (Matrix, error) {
	if startYear > endYear {
		return Matrix{}, errors.Errorf("invalid year range %d-%d", startYear, endYear)
	}

	members, err := svc.repo.QueryAllMembers(ctx)
	if err != nil {
		return Matrix{}, err
	}

	span := endYear - startYear + 1
	matrix := Matrix{
		Years:      make([]int, 0, span),
		Rows:       make([]MatrixRow, 0, len(members)),
		YearTotals: make([]int, span),
	}
	for year := startYear; year <= endYear; year++ {
		matrix.Years = append(matrix.Years, year)
	}

	for _, m := range members {
		row := MatrixRow{
			MemberID:     m.ID,
			MemberNumber: m.MemberNumber,
			Name:         m.Name,
			Payments:     make([]Payment, 0, span),
		}
		for i, year := range matrix.Years {
			p, ok := m.PaymentFor(year)
			if !ok || !p.IsPaid {
				p = Payment{Year: year}
			}
			row.Payments = append(row.Payments, p)
			if p.IsPaid {
				row.YearsPaid++
				matrix.YearTotals[i] += p.Amount
			}
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix, nil
}

package member

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core"
)

var (
	// errors
	ErrNotFound        = errors.New("member not found")
	ErrNumberExists    = errors.New("a member with this member number already exists")
	ErrPaymentNotFound = errors.New("no payment recorded for this year")
)

// maxNumberAttempts bounds the retry loop when generating member numbers.
const maxNumberAttempts = 5

type (
	Repository interface {
		CheckNumberUniqueness(ctx context.Context, number string, excludedMembers ...Member) error
		CreateMember(ctx context.Context, m Member) (Member, error)
		QueryAllMembers(ctx context.Context) ([]Member, error)
		GetMemberByID(ctx context.Context, id string) (Member, error)
		GetMemberByNumber(ctx context.Context, number string) (Member, error)
		// FilterMembers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Member.Name or Member.MemberNumber.
		FilterMembers(ctx context.Context, filter QueryFilter) ([]Member, error)
		// UpdateMember persists the member row and replaces its payment set.
		UpdateMember(ctx context.Context, m Member) (Member, error)
		DeleteMembersByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) checkNumberUniqueness(ctx context.Context, number string, excl ...Member) error {
	if err := svc.repo.CheckNumberUniqueness(ctx, number, excl...); err != nil {
		if errors.Cause(err) == ErrNumberExists {
			return core.NewValidationError(err, core.FieldError{Field: "member_number", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a new Member. The registration year defaults to the
// current year; the member number is generated when not provided. Derived
// delinquency fields start out consistent: the registration year is a grace
// period, so a fresh registrant owes nothing.
func (svc *Service) Register(ctx context.Context, nm NewMember) (Member, error) {
	now := NowFunc().UTC()

	regYear := nm.RegistrationYear
	if regYear == 0 {
		regYear = now.Year()
	}

	number := nm.MemberNumber
	if number != "" {
		if err := svc.checkNumberUniqueness(ctx, number); err != nil {
			return Member{}, err
		}
	} else {
		var err error
		for attempt := 0; ; attempt++ {
			number = NewMemberNumber(regYear)
			if err = svc.repo.CheckNumberUniqueness(ctx, number); err == nil {
				break
			}
			if errors.Cause(err) != ErrNumberExists || attempt == maxNumberAttempts {
				return Member{}, errors.Wrap(err, "generating member number")
			}
		}
	}

	m := Member{
		ID:               uuid.New().String(),
		MemberNumber:     number,
		Name:             nm.Name,
		Email:            nm.Email,
		Phone:            nm.Phone,
		Address:          nm.Address,
		Notes:            nm.Notes,
		DateOfBirth:      nm.DateOfBirth,
		Status:           StatusActive,
		RegistrationYear: regYear,
		RegistrationDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m = Refresh(m, now.Year())

	m, err := svc.repo.CreateMember(ctx, m)
	if err != nil {
		return Member{}, err
	}

	if m.Email != "" && svc.mailSvc != nil {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: m.Name, Address: m.Email}},
			Subject:      "Welcome!",
			TemplateName: "welcome",
			TemplateData: struct {
				Name         string
				MemberNumber string
			}{m.Name, m.MemberNumber},
		})
	}
	return m, nil
}

// Query returns members matching filter; all members when filter is empty.
func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Member, error) {
	if filter == nil || filter.IsEmpty() {
		return svc.repo.QueryAllMembers(ctx)
	}
	return svc.repo.FilterMembers(ctx, *filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Member, error) {
	return svc.repo.GetMemberByID(ctx, id)
}

func (svc *Service) GetByNumber(ctx context.Context, number string) (Member, error) {
	return svc.repo.GetMemberByNumber(ctx, core.CleanString(number))
}

// Update patches a member's record and recomputes its derived fields.
// Zero-valued patch fields leave the original value in place.
func (svc *Service) Update(ctx context.Context, id string, um UpdateMember) (Member, error) {
	m, err := svc.repo.GetMemberByID(ctx, id)
	if err != nil {
		return Member{}, err
	}

	if um.Name != "" {
		m.Name = um.Name
	}
	if um.Email != "" {
		m.Email = um.Email
	}
	if um.Phone != nil {
		m.Phone = *um.Phone
	}
	if um.Address != nil {
		m.Address = *um.Address
	}
	if um.Notes != nil {
		m.Notes = *um.Notes
	}
	if um.DateOfBirth.Valid {
		m.DateOfBirth = um.DateOfBirth
	}
	if um.Status != "" {
		m.Status = um.Status
	}
	m.UpdatedAt = NowFunc().UTC()

	m = Refresh(m, NowFunc().UTC().Year())
	return svc.repo.UpdateMember(ctx, m)
}

// Delete permanently removes members. Destructive and non-recoverable; the
// API layer requires explicit confirmation before calling it.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteMembersByID(ctx, ids...)
}

// AddPayment records dues for a year, replacing any existing record for that
// year, and recomputes the member's delinquency.
func (svc *Service) AddPayment(ctx context.Context, memberID string, np NewPayment) (Member, error) {
	m, err := svc.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return Member{}, err
	}

	now := NowFunc().UTC()
	p := Payment{
		Year:   np.Year,
		Amount: np.Amount,
		Date:   np.Date,
		IsPaid: true,
	}
	if !p.Date.Valid {
		p.Date.SetValid(now)
	}

	replaced := false
	for i := range m.Payments {
		if m.Payments[i].Year == p.Year {
			m.Payments[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		m.Payments = append(m.Payments, p)
	}

	m.UpdatedAt = now
	m = Refresh(m, now.Year())
	return svc.repo.UpdateMember(ctx, m)
}

// UpdatePayment patches the payment recorded for a year and recomputes the
// member's delinquency.
func (svc *Service) UpdatePayment(ctx context.Context, memberID string, year int, up UpdatePayment) (Member, error) {
	m, err := svc.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return Member{}, err
	}

	patched := false
	for i := range m.Payments {
		if m.Payments[i].Year != year {
			continue
		}
		if up.Amount != nil {
			m.Payments[i].Amount = *up.Amount
		}
		if up.Date.Valid {
			m.Payments[i].Date = up.Date
		}
		if up.IsPaid != nil {
			m.Payments[i].IsPaid = *up.IsPaid
		}
		patched = true
		break
	}
	if !patched {
		return Member{}, core.NewValidationError(ErrPaymentNotFound,
			core.FieldError{Field: "year", Error: fmt.Sprintf("no payment recorded for %d", year)})
	}

	now := NowFunc().UTC()
	m.UpdatedAt = now
	m = Refresh(m, now.Year())
	return svc.repo.UpdateMember(ctx, m)
}

// Summary aggregates the whole roster for the dashboard.
func (svc *Service) Summary(ctx context.Context) (Summary, error) {
	members, err := svc.repo.QueryAllMembers(ctx)
	if err != nil {
		return Summary{}, err
	}

	var s Summary
	s.TotalMembers = len(members)
	s.TotalAnnualFees = len(members) * AnnualFee
	for _, m := range members {
		switch m.Status {
		case StatusActive:
			s.ActiveMembers++
		case StatusInactive:
			s.InactiveMembers++
		case StatusDeceased:
			s.DeceasedMembers++
		case StatusDropped:
			s.DroppedMembers++
		case StatusServed:
			s.ServedMembers++
		}
		if m.DelinquentYears > 0 {
			s.DelinquentMembers++
			s.TotalDelinquentYears += m.DelinquentYears
			s.TotalCollectibles += m.TotalDelinquentAmount
		}
	}
	return s, nil
}

// Celebrants returns members whose birthday falls today.
func (svc *Service) Celebrants(ctx context.Context) ([]Member, error) {
	members, err := svc.repo.QueryAllMembers(ctx)
	if err != nil {
		return nil, err
	}
	return BirthdayCelebrants(members, NowFunc()), nil
}

// RefreshAll recomputes derived fields for the whole roster and persists the
// members whose values went stale (typically after a year rollover).
func (svc *Service) RefreshAll(ctx context.Context) (int, error) {
	members, err := svc.repo.QueryAllMembers(ctx)
	if err != nil {
		return 0, err
	}

	currentYear := NowFunc().UTC().Year()
	var updated int
	for _, m := range members {
		fresh := Refresh(m, currentYear)
		if fresh.DelinquentYears == m.DelinquentYears &&
			fresh.TotalDelinquentAmount == m.TotalDelinquentAmount &&
			fresh.Status == m.Status {
			continue
		}
		fresh.UpdatedAt = NowFunc().UTC()
		if _, err := svc.repo.UpdateMember(ctx, fresh); err != nil {
			return updated, errors.Wrapf(err, "refreshing member %s", m.MemberNumber)
		}
		updated++
	}
	return updated, nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/member"
)

type memberRepository struct {
	db *sqlx.DB
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *sqlx.DB) member.Repository {
	return &memberRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to member.ErrNotFound
func (repo memberRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return member.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const memberColumns = `id, member_number, name, email, phone, address, notes, status, date_of_birth,
registration_year, registration_date, profile_picture, health_certificate,
delinquent_years, total_delinquent_amount, created_at, updated_at`

type paymentRow struct {
	MemberID string `db:"member_id"`
	member.Payment
}

// loadPayments attaches each member's payment set, ordered by year.
func (repo memberRepository) loadPayments(ctx context.Context, members []member.Member) error {
	if len(members) == 0 {
		return nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	q, args, err := sqlx.In(`SELECT member_id, year, paid_at, amount, is_paid FROM payments WHERE member_id IN (?) ORDER BY year`, ids)
	if err != nil {
		return errors.Wrap(err, "building payments query")
	}

	var rows []paymentRow
	if err = repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "loading payments")
	}

	byMember := make(map[string][]member.Payment, len(members))
	for _, r := range rows {
		byMember[r.MemberID] = append(byMember[r.MemberID], r.Payment)
	}
	for i := range members {
		members[i].Payments = byMember[members[i].ID]
	}
	return nil
}

// savePayments replaces a member's payment set inside tx.
func (repo memberRepository) savePayments(ctx context.Context, tx *sqlx.Tx, m member.Member) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE member_id = $1`, m.ID); err != nil {
		return errors.Wrap(err, "clearing payments")
	}
	for _, p := range m.Payments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (member_id, year, paid_at, amount, is_paid) VALUES ($1, $2, $3, $4, $5)`,
			m.ID, p.Year, p.Date, p.Amount, p.IsPaid,
		)
		if err != nil {
			return errors.Wrapf(err, "saving payment for %d", p.Year)
		}
	}
	return nil
}

func (repo memberRepository) CheckNumberUniqueness(ctx context.Context, number string, excludedMembers ...member.Member) error {
	q := `SELECT COUNT(*) FROM members WHERE member_number = ?`
	args := []interface{}{number}
	if len(excludedMembers) > 0 {
		ids := make([]string, 0, len(excludedMembers))
		for _, m := range excludedMembers {
			ids = append(ids, m.ID)
		}
		var err error
		if q, args, err = sqlx.In(q+` AND id NOT IN (?)`, number, ids); err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking member number")
	}
	if count > 0 {
		return member.ErrNumberExists
	}
	return nil
}

func (repo memberRepository) CreateMember(ctx context.Context, m member.Member) (member.Member, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
INSERT INTO members (`+memberColumns+`)
VALUES (:id, :member_number, :name, :email, :phone, :address, :notes, :status, :date_of_birth,
        :registration_year, :registration_date, :profile_picture, :health_certificate,
        :delinquent_years, :total_delinquent_amount, :created_at, :updated_at)`, m)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "creating member")
	}
	if err = repo.savePayments(ctx, tx, m); err != nil {
		return member.Member{}, err
	}
	if err = tx.Commit(); err != nil {
		return member.Member{}, errors.Wrap(err, "committing member")
	}
	return m, nil
}

func (repo memberRepository) QueryAllMembers(ctx context.Context) ([]member.Member, error) {
	var members []member.Member
	err := repo.db.SelectContext(ctx, &members, `SELECT `+memberColumns+` FROM members ORDER BY member_number`)
	if err != nil {
		return nil, errors.Wrap(err, "querying members")
	}
	if err = repo.loadPayments(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (repo memberRepository) getMember(ctx context.Context, where string, arg interface{}) (member.Member, error) {
	var m member.Member
	err := repo.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE `+where, arg)
	if err != nil {
		return member.Member{}, repo.trapNoRowsErr(err, "finding member")
	}

	members := []member.Member{m}
	if err = repo.loadPayments(ctx, members); err != nil {
		return member.Member{}, err
	}
	return members[0], nil
}

func (repo memberRepository) GetMemberByID(ctx context.Context, id string) (member.Member, error) {
	return repo.getMember(ctx, `id = $1`, id)
}

func (repo memberRepository) GetMemberByNumber(ctx context.Context, number string) (member.Member, error) {
	return repo.getMember(ctx, `member_number = $1`, number)
}

func (repo memberRepository) FilterMembers(ctx context.Context, filter member.QueryFilter) ([]member.Member, error) {
	q := `SELECT ` + memberColumns + ` FROM members WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		q += ` AND (name ILIKE ? OR member_number ILIKE ?)`
		args = append(args, args[len(args)-1])
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		q += ` AND status = ?`
	}
	if filter.RegistrationYear != 0 {
		args = append(args, filter.RegistrationYear)
		q += ` AND registration_year = ?`
	}
	if filter.Delinquent != nil {
		if *filter.Delinquent {
			q += ` AND delinquent_years > 0`
		} else {
			q += ` AND delinquent_years = 0`
		}
	}
	q += ` ORDER BY member_number`

	var members []member.Member
	if err := repo.db.SelectContext(ctx, &members, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "filtering members")
	}
	if err := repo.loadPayments(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (repo memberRepository) UpdateMember(ctx context.Context, m member.Member) (member.Member, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.NamedExecContext(ctx, `
UPDATE members
SET member_number           = :member_number,
    name                    = :name,
    email                   = :email,
    phone                   = :phone,
    address                 = :address,
    notes                   = :notes,
    status                  = :status,
    date_of_birth           = :date_of_birth,
    registration_year       = :registration_year,
    registration_date       = :registration_date,
    profile_picture         = :profile_picture,
    health_certificate      = :health_certificate,
    delinquent_years        = :delinquent_years,
    total_delinquent_amount = :total_delinquent_amount,
    updated_at              = :updated_at
WHERE id = :id`, m)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "updating member")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return member.Member{}, member.ErrNotFound
	}
	if err = repo.savePayments(ctx, tx, m); err != nil {
		return member.Member{}, err
	}
	if err = tx.Commit(); err != nil {
		return member.Member{}, errors.Wrap(err, "committing member")
	}
	return m, nil
}

func (repo memberRepository) DeleteMembersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM members WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting members")
	}
	return nil
}

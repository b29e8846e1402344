package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/scngmai/damayan/core/member"
)

type memberRepository struct {
	db *memberTable
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) member.Repository {
	return &memberRepository{db: db.member}
}

func (repo *memberRepository) query() []member.Member {
	members := make([]member.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].MemberNumber < members[j].MemberNumber })
	return members
}

func (repo *memberRepository) CheckNumberUniqueness(_ context.Context, number string, excludedMembers ...member.Member) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, m := range repo.query() {
		if m.MemberNumber != number {
			continue
		}
		excluded := false
		for _, excl := range excludedMembers {
			if excl.ID == m.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return member.ErrNumberExists
		}
	}
	return nil
}

func (repo *memberRepository) CreateMember(_ context.Context, m member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[m.ID] = &m
	return m, nil
}

func (repo *memberRepository) QueryAllMembers(_ context.Context) ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *memberRepository) GetMemberByID(_ context.Context, id string) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) GetMemberByNumber(_ context.Context, number string) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, m := range repo.query() {
		if m.MemberNumber == number {
			return m, nil
		}
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) FilterMembers(_ context.Context, filter member.QueryFilter) ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]member.Member, 0)
	search := strings.ToLower(filter.Search)
	for _, m := range repo.query() {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.MemberNumber), search) {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.RegistrationYear != 0 && m.RegistrationYear != filter.RegistrationYear {
			continue
		}
		if filter.Delinquent != nil && (m.DelinquentYears > 0) != *filter.Delinquent {
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (repo *memberRepository) UpdateMember(_ context.Context, m member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[m.ID]; !ok {
		return member.Member{}, member.ErrNotFound
	}
	repo.db.table[m.ID] = &m
	return m, nil
}

func (repo *memberRepository) DeleteMembersByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

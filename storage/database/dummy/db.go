package dummydb

import (
	"sync"

	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/bulletin"
	"github.com/scngmai/damayan/core/member"
	"github.com/scngmai/damayan/core/milestone"
	"github.com/scngmai/damayan/core/officer"
	"github.com/scngmai/damayan/core/user"
)

// DB is an in-memory database used by tests and local tooling.
type (
	DB struct {
		member    *memberTable
		user      *userTable
		officer   *officerTable
		milestone *milestoneTable
		bulletin  *bulletinTable
		activity  *activityTable
	}

	memberTable struct {
		sync.RWMutex
		table map[string]*member.Member
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	officerTable struct {
		sync.RWMutex
		table map[string]*officer.Officer
	}

	milestoneTable struct {
		sync.RWMutex
		table map[string]*milestone.Milestone
	}

	bulletinTable struct {
		sync.RWMutex
		table map[string]*bulletin.Post
	}

	activityTable struct {
		sync.RWMutex
		entries []activity.Entry // newest first
	}
)

func Open() (*DB, error) {
	db := &DB{
		member:    &memberTable{table: make(map[string]*member.Member)},
		user:      &userTable{table: make(map[string]*user.User)},
		officer:   &officerTable{table: make(map[string]*officer.Officer)},
		milestone: &milestoneTable{table: make(map[string]*milestone.Milestone)},
		bulletin:  &bulletinTable{table: make(map[string]*bulletin.Post)},
		activity:  &activityTable{},
	}
	return db, nil
}

// Reset empties all tables.
func (db *DB) Reset() {
	db.member.Lock()
	db.member.table = make(map[string]*member.Member)
	db.member.Unlock()

	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()

	db.officer.Lock()
	db.officer.table = make(map[string]*officer.Officer)
	db.officer.Unlock()

	db.milestone.Lock()
	db.milestone.table = make(map[string]*milestone.Milestone)
	db.milestone.Unlock()

	db.bulletin.Lock()
	db.bulletin.table = make(map[string]*bulletin.Post)
	db.bulletin.Unlock()

	db.activity.Lock()
	db.activity.entries = nil
	db.activity.Unlock()
}

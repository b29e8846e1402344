package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	echoapi "github.com/scngmai/damayan/apps/api/echo"
	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/member"
)

func Test_dashboardApi(t *testing.T) {
	resetDB(t)
	mockClock(t, 2024)

	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	m1 := createMember(t, "Jose Rizal", "GM20200001", 2020, 2021, 2022, 2023, 2024)
	createMember(t, "Andres Bonifacio", "GM20200002", 2020, 2021, 2022)
	createMember(t, "Juan Luna", "GM20190003", 2019)
	memberToken := getToken(t, mario)

	// celebrant: date of birth matching the mocked clock's month and day
	m1.DateOfBirth = null.TimeFrom(time.Date(1950, time.June, 1, 0, 0, 0, 0, time.UTC))
	if _, err := memberRepo.UpdateMember(context.Background(), m1); err != nil {
		t.Fatalf("UpdateMember(): %v", err)
	}

	createPost(t, "General Assembly", "Pia Go", time.Now().UTC().Truncate(1e9), true)

	wantSummary := member.Summary{
		TotalMembers:         3,
		ActiveMembers:        1,
		InactiveMembers:      1,
		DroppedMembers:       1,
		DelinquentMembers:    2,
		TotalDelinquentYears: 7, // 2 + 5
		TotalCollectibles:    7 * member.AnnualFee,
		TotalAnnualFees:      3 * member.AnnualFee,
	}

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/dashboard")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("Summary", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/summary", memberToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, wantSummary)}, rec)
	})

	t.Run("Celebrants", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/celebrants", memberToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var celebrants []member.Member
		if err := json.Unmarshal(rec.Body.Bytes(), &celebrants); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(celebrants) != 1 || celebrants[0].ID != m1.ID {
			t.Errorf("failed! celebrants = %+v", celebrants)
		}
	})

	t.Run("Everything in one payload", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard", memberToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var resp echoapi.DashboardResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if resp.Summary != wantSummary {
			t.Errorf("failed! summary = %+v; want %+v", resp.Summary, wantSummary)
		}
		if len(resp.Celebrants) != 1 {
			t.Errorf("failed! celebrants = %+v", resp.Celebrants)
		}
		if len(resp.Bulletin) != 1 {
			t.Errorf("failed! bulletin = %+v", resp.Bulletin)
		}
	})
}

func Test_dashboardApi_recentActivity(t *testing.T) {
	resetDB(t)
	mockClock(t, 2024)

	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	m := createMember(t, "Andres Bonifacio", "GM20200002", 2020, 2021, 2022)
	treasurerToken := getToken(t, tessa)

	// mutations feed the audit trail
	body := marchallObj(t, member.NewPayment{Year: 2023, Amount: member.AnnualFee})
	req, rec := newAuthRequest(http.MethodPost, "/v1/members/"+m.ID+"/payments", treasurerToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/dashboard/activity", treasurerToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}

	var entries []activity.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("json.Unmarshal(): %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("failed! entries = %+v", entries)
	}
	e := entries[0]
	if e.Type != activity.TypePaymentAdded || e.User != tessa.Name {
		t.Errorf("failed! entry = %+v", e)
	}
}

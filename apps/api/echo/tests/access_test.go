package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/scngmai/damayan/core/access"
)

func Test_accessApi_tabs(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	aida := createUser(t, "Aida Torres", "aida@scngmai.org", access.RoleAuditor, true)
	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin sees everything", token: getToken(t, ana), wantCode: http.StatusOK,
			wantData: marchallObj(t, []access.Tab{
				access.TabDashboard, access.TabRegistration, access.TabOfficers, access.TabReports,
				access.TabProfile, access.TabMilestones, access.TabUserManagement,
			}),
		},
		{
			name: "Treasurer", token: getToken(t, tessa), wantCode: http.StatusOK,
			wantData: marchallObj(t, []access.Tab{
				access.TabDashboard, access.TabRegistration, access.TabOfficers, access.TabReports,
				access.TabProfile, access.TabMilestones,
			}),
		},
		{
			// the officers tab has its own role list and excludes auditors
			name: "Auditor", token: getToken(t, aida), wantCode: http.StatusOK,
			wantData: marchallObj(t, []access.Tab{access.TabDashboard, access.TabReports, access.TabProfile}),
		},
		{
			name: "Member", token: getToken(t, mario), wantCode: http.StatusOK,
			wantData: marchallObj(t, []access.Tab{access.TabDashboard, access.TabProfile}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/access/tabs", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_accessApi_functions(t *testing.T) {
	resetDB(t)

	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)

	fnIDs := func(t *testing.T, body []byte) []int {
		t.Helper()
		var fns []access.Function
		if err := json.Unmarshal(body, &fns); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		ids := make([]int, 0, len(fns))
		for _, fn := range fns {
			ids = append(ids, fn.ID)
		}
		return ids
	}

	tests := []struct {
		name    string
		token   string
		wantIDs []int
	}{
		{
			name: "Treasurer", token: getToken(t, tessa),
			wantIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 15, 16, 17},
		},
		// plain members may only view the overview
		{name: "Member", token: getToken(t, mario), wantIDs: []int{16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/access/functions", tt.token)
			app.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
			}
			ids := fnIDs(t, rec.Body.Bytes())
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("failed! ids = %v; want %v", ids, tt.wantIDs)
			}
			for i, id := range ids {
				if id != tt.wantIDs[i] {
					t.Fatalf("failed! ids = %v; want %v", ids, tt.wantIDs)
				}
			}
		})
	}
}

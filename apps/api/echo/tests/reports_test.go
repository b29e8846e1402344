package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/member"
)

func Test_reportsApi_overview(t *testing.T) {
	resetDB(t)
	mockClock(t, 2024)

	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	m1 := createMember(t, "Jose Rizal", "GM20200001", 2020, 2021, 2022, 2023, 2024)
	m2 := createMember(t, "Andres Bonifacio", "GM20200002", 2020, 2021, 2022)

	latest1 := m1.Payments[3] // 2024
	latest2 := m2.Payments[1] // 2022
	wantRows := []member.OverviewRow{
		{
			Member:        m1,
			LatestPayment: &latest1,
			RecentYears: []member.YearStanding{
				{Year: 2022, Status: member.PayStatePaid},
				{Year: 2023, Status: member.PayStatePaid},
				{Year: 2024, Status: member.PayStatePaid},
			},
		},
		{
			Member:        m2,
			LatestPayment: &latest2,
			RecentYears: []member.YearStanding{
				{Year: 2022, Status: member.PayStatePaid},
				{Year: 2023, Status: member.PayStateDelinquent},
				{Year: 2024, Status: member.PayStatePending},
			},
		},
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		// the overview is function 16 and open to plain members
		{name: "Overview", token: getToken(t, mario), wantCode: http.StatusOK, wantData: marchallObj(t, wantRows)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/reports/overview", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_reportsApi_paymentMatrix(t *testing.T) {
	resetDB(t)
	mockClock(t, 2024)

	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	aida := createUser(t, "Aida Torres", "aida@scngmai.org", access.RoleAuditor, true)
	sofia := createUser(t, "Sofia Santos", "sofia@scngmai.org", access.RoleSecretary, true)
	m1 := createMember(t, "Jose Rizal", "GM20200001", 2020, 2021, 2022, 2023, 2024)
	m2 := createMember(t, "Andres Bonifacio", "GM20200002", 2020, 2021, 2022)
	auditorToken := getToken(t, aida)

	wantMatrix := member.Matrix{
		Years: []int{2021, 2022, 2023, 2024},
		Rows: []member.MatrixRow{
			{
				MemberID:     m1.ID,
				MemberNumber: m1.MemberNumber,
				Name:         m1.Name,
				Payments:     m1.Payments,
				YearsPaid:    4,
			},
			{
				MemberID:     m2.ID,
				MemberNumber: m2.MemberNumber,
				Name:         m2.Name,
				// missing years come back as unpaid placeholders
				Payments:  append(append([]member.Payment{}, m2.Payments...), member.Payment{Year: 2023}, member.Payment{Year: 2024}),
				YearsPaid: 2,
			},
		},
		YearTotals: []int{2 * member.AnnualFee, 2 * member.AnnualFee, member.AnnualFee, member.AnnualFee},
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			// full payment history is function 17: board roles only
			name: "Members not allowed", token: getToken(t, mario),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			// the secretary sits on the board but is not on the function 17 list
			name: "Secretaries not allowed", token: getToken(t, sofia),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "Invalid range", path: "?start_year=2024&end_year=2021", token: auditorToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"start_year": "must not be after end_year"}),
		},
		{
			name: "Matrix", path: "?start_year=2021&end_year=2024", token: auditorToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, wantMatrix),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/reports/payment-matrix"+tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Default range covers the last 5 years", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/reports/payment-matrix", auditorToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var matrix member.Matrix
		if err := json.Unmarshal(rec.Body.Bytes(), &matrix); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if len(matrix.Years) != 5 || matrix.Years[0] != 2020 || matrix.Years[4] != 2024 {
			t.Errorf("failed! years = %v", matrix.Years)
		}
	})
}

package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/milestone"
)

func createMilestone(t *testing.T, age, amount int, description string) milestone.Milestone {
	t.Helper()

	now := milestone.NowFunc().UTC().Truncate(1e9) // 1s
	ms, err := milestoneRepo.CreateMilestone(context.Background(), milestone.Milestone{
		ID:          uuid.New().String(),
		Age:         age,
		Amount:      amount,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("createMilestone(): %v", err)
	}
	return ms
}

func Test_milestoneApi_milestoneQuery(t *testing.T) {
	resetDB(t)

	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	ms1 := createMilestone(t, 80, 5000, "80th birthday benefit")
	ms2 := createMilestone(t, 90, 10000, "90th birthday benefit")

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		// ordered by age
		{name: "Get all", token: getToken(t, mario), wantCode: http.StatusOK, wantData: marchallList(t, ms1, ms2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/milestones", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_milestoneApi_milestoneCreate(t *testing.T) {
	resetDB(t)

	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	sec := createUser(t, "Sela Ocampo", "sela@scngmai.org", access.RoleSecretary, true)
	treasurerToken := getToken(t, tessa)

	body := marchallObj(t, milestone.NewMilestone{Age: 80, Amount: 5000, Description: "80th birthday benefit"})

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			// managing milestones is function 12: Admin, President and Treasurer
			name: "Secretary not allowed", token: getToken(t, sec), body: body,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "Fields required", token: treasurerToken, body: marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"age":         "this field is required",
				"amount":      "this field is required",
				"description": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/milestones", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Milestone created", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/milestones", treasurerToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var ms milestone.Milestone
		if err := json.Unmarshal(rec.Body.Bytes(), &ms); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if ms.Age != 80 || ms.Amount != 5000 || !ms.IsActive {
			t.Errorf("failed! got %+v", ms)
		}
	})
}

func Test_milestoneApi_milestoneUpdateDestroy(t *testing.T) {
	resetDB(t)

	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	ms := createMilestone(t, 80, 5000, "80th birthday benefit")
	treasurerToken := getToken(t, tessa)

	t.Run("Milestone deactivated", func(t *testing.T) {
		body := marchallObj(t, milestone.UpdateMilestone{IsActive: bPtr(false)})
		req, rec := newAuthRequest(http.MethodPut, "/v1/milestones/"+ms.ID, treasurerToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var got milestone.Milestone
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if got.IsActive {
			t.Error("failed! milestone still active")
		}
	})

	t.Run("Unknown milestone", func(t *testing.T) {
		body := marchallObj(t, milestone.UpdateMilestone{IsActive: bPtr(false)})
		req, rec := newAuthRequest(http.MethodPut, "/v1/milestones/lol", treasurerToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("Milestone removed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/milestones/"+ms.ID, treasurerToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}
	})
}

package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/scngmai/damayan/apps/api/echo"
	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/user"
	"github.com/scngmai/damayan/services/email"
)

func Test_userApi_login(t *testing.T) {
	resetDB(t)

	createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	createUser(t, "Nilo Santos", "nilo@scngmai.org", access.RoleMember, false)

	tests := []httpTest{
		{
			name: "Fields required", body: marchallObj(t, echoapi.LoginRequest{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "this field is required", "password": "this field is required"}),
		},
		{
			name: "Unknown email", body: marchallObj(t, echoapi.LoginRequest{Email: "who@scngmai.org", Password: testPassword}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Wrong password", body: marchallObj(t, echoapi.LoginRequest{Email: "ana@scngmai.org", Password: "nope"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "Deactivated account", body: marchallObj(t, echoapi.LoginRequest{Email: "nilo@scngmai.org", Password: testPassword}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Logged in", func(t *testing.T) {
		body := marchallObj(t, echoapi.LoginRequest{Email: "ana@scngmai.org", Password: testPassword})
		req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var resp echoapi.LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if resp.Token == "" {
			t.Error("failed! empty token")
		}
	})
}

func Test_userApi_tokenRefresh(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	nilo := createUser(t, "Nilo Santos", "nilo@scngmai.org", access.RoleMember, false)

	now := time.Now()
	unrefreshableClaims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   ana.ID,
			Audience:  "Damayan",
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Add(-2 * core.Conf.Server.JWTRefreshExpirationDelta).Unix(), // older than threshold
		Name:         ana.Name,
		Email:        ana.Email,
		Role:         ana.Role,
		IsAdmin:      ana.IsAdmin(),
	}
	unrefreshableToken, err := echoapi.GenerateToken(unrefreshableClaims)
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Inactive user not allowed", token: getToken(t, nilo),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "Refresh period expired", token: unrefreshableToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "refresh has expired"}),
		},
		{name: "Token refreshed", token: getToken(t, ana), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_userQuery(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	nilo := createUser(t, "Nilo Santos", "nilo@scngmai.org", access.RoleMember, false)
	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)

	adminToken := getToken(t, ana)
	path := func(params url.Values) string { return "/v1/users?" + params.Encode() }

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, tessa),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "Get all", path: "/v1/users", token: adminToken, wantData: marchallList(t, ana, mario, nilo, tessa)},
		{name: "search (unknown)", path: path(url.Values{"search": {"lol"}}), token: adminToken, wantData: marchallList(t)},
		{name: "search=mario", path: path(url.Values{"search": {"mario"}}), token: adminToken, wantData: marchallList(t, mario)},
		{
			name: "role=Member", path: path(url.Values{"role": {string(access.RoleMember)}}),
			token: adminToken, wantData: marchallList(t, mario, nilo),
		},
		{name: "is_active=false", path: path(url.Values{"is_active": {"false"}}), token: adminToken, wantData: marchallList(t, nilo)},
		{
			name: "combo", path: path(url.Values{"role": {string(access.RoleMember)}, "is_active": {"true"}}),
			token: adminToken, wantData: marchallList(t, mario),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantCode == 0 {
				tt.wantCode = http.StatusOK
			}
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_register(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	adminToken := getToken(t, ana)

	newUsr := func(name, email string, role access.Role) []byte {
		return marchallObj(t, user.NewUser{
			Name:            name,
			Email:           email,
			Role:            role,
			Password:        testPassword,
			PasswordConfirm: testPassword,
		})
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", token: getToken(t, tessa), body: newUsr("Pia Go", "pia@scngmai.org", access.RolePIO),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "Fields required", token: adminToken, body: marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name":             "this field is required",
				"email":            "this field is required",
				"role":             "this field is required",
				"password":         "this field is required",
				"password_confirm": "this field is required",
			}),
		},
		{
			name: "Email taken", token: adminToken, body: newUsr("Ana Bis", "ana@scngmai.org", access.RoleMember),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "a user with this email already exists"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("User created", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/register", adminToken, newUsr("Pia Go", "pia@scngmai.org", access.RolePIO))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if usr.Email != "pia@scngmai.org" || usr.Role != access.RolePIO || !usr.IsActive {
			t.Errorf("failed! got %+v", usr)
		}
	})
}

func Test_userApi_setActive(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	nilo := createUser(t, "Nilo Santos", "nilo@scngmai.org", access.RoleMember, false)
	adminToken := getToken(t, ana)

	approve := marchallObj(t, echoapi.SetActiveRequest{IsActive: bPtr(true)})

	tests := []httpTest{
		{
			name: "Auth required", path: "/v1/users/" + nilo.ID + "/active", body: approve,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			// approving accounts is function 13: Admin and President only
			name: "Treasurer not allowed", path: "/v1/users/" + nilo.ID + "/active", token: getToken(t, tessa), body: approve,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "is_active required", path: "/v1/users/" + nilo.ID + "/active", token: adminToken,
			body:     marchallObj(t, map[string]string{}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"is_active": "this field is required"}),
		},
		{
			name: "Unknown user", path: "/v1/users/lol/active", token: adminToken, body: approve,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Account approved", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+nilo.ID+"/active", adminToken, approve)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if !usr.IsActive {
			t.Error("failed! account still inactive")
		}
	})
}

func Test_userApi_linkMember(t *testing.T) {
	resetDB(t)

	pres := createUser(t, "Pedro Cruz", "pedro@scngmai.org", access.RolePresident, true)
	tessa := createUser(t, "Tessa Lim", "tessa@scngmai.org", access.RoleTreasurer, true)
	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	m := createMember(t, "Mario Reyes", "GM20200001", 2020)

	body := marchallObj(t, echoapi.LinkMemberRequest{MemberID: m.ID})

	tests := []httpTest{
		{
			// linking emails to members is function 14: Admin and President only
			name: "Treasurer not allowed", token: getToken(t, tessa),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "Member linked", token: getToken(t, pres), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+mario.ID+"/member", tt.token, body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusOK {
				var usr user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if usr.MemberID != m.ID {
					t.Errorf("failed! member_id = %v; want %v", usr.MemberID, m.ID)
				}
			}
		})
	}
}

func Test_userApi_userUpdate(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)

	t.Run("Others' accounts are hidden", func(t *testing.T) {
		body := marchallObj(t, user.UpdateUser{Name: "Sneaky"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+ana.ID, getToken(t, mario), body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("Role change is admin-only", func(t *testing.T) {
		body := marchallObj(t, user.UpdateUser{Role: access.RoleAdmin})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+mario.ID, getToken(t, mario), body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)}, rec)
	})

	t.Run("Own name updated", func(t *testing.T) {
		body := marchallObj(t, user.UpdateUser{Name: "Mario G. Reyes"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+mario.ID, getToken(t, mario), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if usr.Name != "Mario G. Reyes" {
			t.Errorf("failed! name = %v", usr.Name)
		}
	})

	t.Run("Role changed by admin", func(t *testing.T) {
		body := marchallObj(t, user.UpdateUser{Role: access.RoleSecretary})
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+mario.ID, getToken(t, ana), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if usr.Role != access.RoleSecretary {
			t.Errorf("failed! role = %v", usr.Role)
		}
	})
}

func Test_userApi_userDestroy(t *testing.T) {
	resetDB(t)

	ana := createUser(t, "Ana Cruz", "ana@scngmai.org", access.RoleAdmin, true)
	mario := createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)
	nilo := createUser(t, "Nilo Santos", "nilo@scngmai.org", access.RoleMember, false)
	adminToken := getToken(t, ana)

	tests := []httpTest{
		{
			name: "Admin required", path: "/v1/users/" + ana.ID, token: getToken(t, mario),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "No suicide", path: "/v1/users/" + ana.ID, token: adminToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "No bulk suicide", path: "/v1/users?id=" + ana.ID + "&id=" + nilo.ID, token: adminToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "User deleted", path: "/v1/users/" + mario.ID, token: adminToken, wantCode: http.StatusNoContent},
		{name: "Users deleted", path: "/v1/users?id=" + nilo.ID, token: adminToken, wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Deleted users are gone", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, ana)}, rec)
	})
}

var resetLinkRegex = regexp.MustCompile(`password-reset-confirm\?uid=(\S+)&token=(\S+)`)

func Test_userApi_passwordReset(t *testing.T) {
	resetDB(t)

	createUser(t, "Mario Reyes", "mario@scngmai.org", access.RoleMember, true)

	t.Run("Reset requested", func(t *testing.T) {
		body := marchallObj(t, echoapi.PasswordResetRequest{Email: "mario@scngmai.org"})
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
	})

	// dig the reset link out of the last sent mail
	if len(emailsvc.SentMessages) == 0 {
		t.Fatal("no password reset mail sent")
	}
	mail := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	match := resetLinkRegex.FindStringSubmatch(mail.TextContent)
	if match == nil {
		t.Fatalf("no reset link in mail: %v", mail.TextContent)
	}
	uid, token := match[1], match[2]

	t.Run("Invalid token rejected", func(t *testing.T) {
		body := marchallObj(t, user.ResetUserPassword{
			UID:             uid,
			Token:           "not-a-token",
			Password:        "n3w!Pa55word",
			PasswordConfirm: "n3w!Pa55word",
		})
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset-confirm", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})

	t.Run("Password reset", func(t *testing.T) {
		body := marchallObj(t, user.ResetUserPassword{
			UID:             uid,
			Token:           token,
			Password:        "n3w!Pa55word",
			PasswordConfirm: "n3w!Pa55word",
		})
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset-confirm", body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}

		// the new password works
		login := marchallObj(t, echoapi.LoginRequest{Email: "mario@scngmai.org", Password: "n3w!Pa55word"})
		req, rec = newRequest(http.MethodPost, "/v1/users/login", login)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
	})
}

func bPtr(b bool) *bool { return &b }

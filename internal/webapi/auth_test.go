package webapi

import (
	"net/http"
	"testing"
)

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(request{method: http.MethodGet, path: "/api/v1/profile"})
	env := decode(t, rec, http.StatusUnauthorized, nil)
	if env.Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED, got %q", env.Code)
	}
	rec = s.do(request{method: http.MethodGet, path: "/api/v1/profile", token: "not-a-token"})
	decode(t, rec, http.StatusUnauthorized, nil)
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin("renter@example.com", "renter")

	for _, tc := range []struct {
		name string
		body map[string]string
		code string
	}{
		{"duplicate", map[string]string{"email": "renter@example.com", "full_name": "X", "password": "secret1", "role": "renter"}, "EMAIL_TAKEN"},
		{"bad role", map[string]string{"email": "x@example.com", "full_name": "X", "password": "secret1", "role": "admin"}, "INVALID_ROLE"},
		{"short password", map[string]string{"email": "x@example.com", "full_name": "X", "password": "abc", "role": "agent"}, "WEAK_PASSWORD"},
		{"missing fields", map[string]string{"email": "x@example.com"}, "INVALID_REQUEST"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(request{method: http.MethodPost, path: "/api/v1/auth/register", body: tc.body})
			env := decode(t, rec, http.StatusBadRequest, nil)
			if env.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, env.Code)
			}
		})
	}

	rec := s.do(request{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email": "renter@example.com", "password": "wrong-pw",
	}})
	env := decode(t, rec, http.StatusForbidden, nil)
	if env.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", env.Code)
	}
}

func TestSessionLogin(t *testing.T) {
	s := newTestServer(t)
	_, cookies := s.registerAndLogin("agent@example.com", "agent")
	if len(cookies) == 0 {
		t.Fatal("login must set a session cookie")
	}

	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	rec := s.do(request{method: http.MethodGet, path: "/api/v1/profile", cookies: cookies})
	decode(t, rec, http.StatusOK, &profile)
	if profile.Email != "agent@example.com" || profile.Role != "agent" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/auth/logout", cookies: cookies})
	decode(t, rec, http.StatusOK, nil)
	cleared := rec.Result().Cookies()
	rec = s.do(request{method: http.MethodGet, path: "/api/v1/profile", cookies: cleared})
	decode(t, rec, http.StatusUnauthorized, nil)
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerAndLogin("renter@example.com", "renter")

	var profile struct {
		PreferredLocation string `json:"preferred_location"`
		Budget            string `json:"budget"`
		DesiredMoveIn     string `json:"desired_move_in"`
	}
	rec := s.do(request{method: http.MethodPut, path: "/api/v1/profile", token: token, body: map[string]interface{}{
		"preferred_location": "Chicago",
		"budget":             "1800.25",
		"desired_move_in":    "2024-05-01",
	}})
	decode(t, rec, http.StatusOK, &profile)
	if profile.PreferredLocation != "Chicago" || profile.Budget != "1800.25" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	rec = s.do(request{method: http.MethodPut, path: "/api/v1/profile", token: token, body: map[string]interface{}{
		"agency_name": "Acme",
	}})
	env := decode(t, rec, http.StatusBadRequest, nil)
	if env.Code != "PROFILE_ROLE_MISMATCH" {
		t.Fatalf("expected PROFILE_ROLE_MISMATCH, got %s", env.Code)
	}
}

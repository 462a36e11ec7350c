package webapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/estatehub/config"
	"github.com/talkincode/estatehub/internal/app"
	"github.com/talkincode/estatehub/internal/testdb"
	"github.com/talkincode/estatehub/internal/webserver"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := *config.DefaultAppConfig
	application := app.NewApplication(&cfg)
	application.OverrideDB(testdb.Open(t))
	webserver.Init(application)
	Init()
	return &testServer{t: t, e: webserver.GetServer().Echo()}
}

type request struct {
	method  string
	path    string
	body    interface{}
	token   string
	cookies []*http.Cookie
}

func (s *testServer) do(r request) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if r.body != nil {
		if err := json.NewEncoder(&buf).Encode(r.body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(r.method, r.path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if r.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+r.token)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, status int, out interface{}) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (%s)", err, string(env.Data))
		}
	}
	return env
}

func (s *testServer) registerAndLogin(email, role string) (string, []*http.Cookie) {
	s.t.Helper()
	rec := s.do(request{method: http.MethodPost, path: "/api/v1/auth/register", body: map[string]string{
		"email": email, "full_name": "Test " + role, "password": "secret1", "role": role,
	}})
	decode(s.t, rec, http.StatusCreated, nil)

	rec = s.do(request{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email": email, "password": "secret1",
	}})
	var out struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, http.StatusOK, &out)
	if out.Token == "" {
		s.t.Fatal("login must return a token")
	}
	return out.Token, rec.Result().Cookies()
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(request{method: http.MethodGet, path: "/healthz"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = s.do(request{method: http.MethodGet, path: "/metrics"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
}

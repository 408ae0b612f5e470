package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-ayesiga/portfolio-service/internal/auth"
	"github.com/paul-ayesiga/portfolio-service/internal/cache"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
	"github.com/paul-ayesiga/portfolio-service/internal/handler"
	"github.com/paul-ayesiga/portfolio-service/internal/repository/sqlstore"
	"github.com/paul-ayesiga/portfolio-service/internal/server"
	"github.com/paul-ayesiga/portfolio-service/internal/service"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

const testSecret = "server-test-secret-0123456789"

type stubRegistration struct {
	got dto.Registration
}

func (s *stubRegistration) Register(_ context.Context, in dto.Registration) (*dto.RegistrationResult, error) {
	s.got = in
	return &dto.RegistrationResult{Message: "User registered successfully", Username: in.Username}, nil
}

type testServer struct {
	ts           *httptest.Server
	registration *stubRegistration
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlstore.Open(context.Background(), sqlstore.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	verifier, err := auth.NewVerifier(auth.VerifierConfig{HMACSecret: testSecret})
	require.NoError(t, err)

	c := cache.NewMemory(0)
	v := validation.New()
	reg := &stubRegistration{}

	srv := server.New(server.Config{Port: 0}, server.Dependencies{
		Projects:     service.NewProjectService(db, c, v, logger),
		Skills:       service.NewSkillService(db, c, v, logger),
		Experiences:  service.NewExperienceService(db, c, v, logger),
		Profiles:     service.NewProfileService(db, v, logger),
		Registration: reg,
		Store:        db,
		Verifier:     verifier,
	}, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{ts: ts, registration: reg}
}

func token(t *testing.T, roles ...any) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":                "user-1",
		"preferred_username": "jane",
		"exp":                time.Now().Add(time.Hour).Unix(),
		"realm_access":       map[string]any{"roles": roles},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// do sends a JSON request and returns the response with its body read.
func (s *testServer) do(t *testing.T, method, path, bearer string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, s.ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

// adminRoutes lists every route in the admin group.
var adminRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/admin/projects"},
	{http.MethodPut, "/api/admin/projects/1"},
	{http.MethodDelete, "/api/admin/projects/1"},
	{http.MethodPost, "/api/admin/skills"},
	{http.MethodPut, "/api/admin/skills/1"},
	{http.MethodDelete, "/api/admin/skills/1"},
	{http.MethodPost, "/api/admin/experiences"},
	{http.MethodPut, "/api/admin/experiences/1"},
	{http.MethodDelete, "/api/admin/experiences/1"},
	{http.MethodGet, "/api/admin/profiles"},
	{http.MethodGet, "/api/admin/profiles/1"},
	{http.MethodPost, "/api/admin/profiles"},
	{http.MethodPut, "/api/admin/profiles/1"},
	{http.MethodDelete, "/api/admin/profiles/1"},
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	client := token(t, "client")
	body := map[string]any{"title": "x"}

	for _, rt := range adminRoutes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp, raw := s.do(t, rt.method, rt.path, "", body)
			require.Equal(t, http.StatusForbidden, resp.StatusCode, "anonymous")

			e := decode[handler.ErrorResponse](t, raw)
			assert.Equal(t, "Access denied", e.Message)
			assert.Equal(t, rt.path, e.Path)
			assert.NotEmpty(t, e.Timestamp)

			resp, _ = s.do(t, rt.method, rt.path, "not.a.jwt", body)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, "invalid token")

			resp, raw = s.do(t, rt.method, rt.path, client, body)
			require.Equal(t, http.StatusForbidden, resp.StatusCode, "authenticated without ADMIN")
			assert.Contains(t, decode[handler.ErrorResponse](t, raw).Details, "ROLE_ADMIN")
		})
	}

	t.Run("admin passes", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPost, "/api/admin/projects", token(t, "ADMIN"), dto.Project{Title: "Portfolio"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestUnroutedRequestsUseErrorEnvelope(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantDetails string
	}{
		{"unknown path", http.MethodGet, "/api/public/nothing-here", http.StatusNotFound, "Resource not found"},
		{"unknown root path", http.MethodGet, "/nope", http.StatusNotFound, "Resource not found"},
		{"wrong method on public list", http.MethodDelete, "/api/public/projects", http.StatusMethodNotAllowed, "Method not allowed"},
		{"wrong method on public item", http.MethodPost, "/api/public/skills/1", http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, tt.method, tt.path, "", nil)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			e := decode[handler.ErrorResponse](t, body)
			assert.Equal(t, tt.wantDetails, e.Details)
			assert.Equal(t, tt.path, e.Path)
			assert.Contains(t, e.Message, tt.method)
		})
	}
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := token(t, "ADMIN")

	resp, body := s.do(t, http.MethodPost, "/api/admin/projects", admin, map[string]any{
		"title":        "Portfolio",
		"featured":     true,
		"startDate":    "2023-01-15",
		"technologies": []string{"Go", "React"},
		"categories":   []string{"web"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[dto.Project](t, body)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.CreatedAt)

	item := fmt.Sprintf("/api/public/projects/%d", created.ID)

	resp, body = s.do(t, http.MethodGet, item, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.Project](t, body)
	assert.Equal(t, "Portfolio", got.Title)
	assert.Equal(t, []string{"Go", "React"}, got.Technologies)
	assert.Equal(t, "2023-01-15", got.StartDate.Format("2006-01-02"))

	resp, body = s.do(t, http.MethodGet, "/api/public/projects/featured", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.Project](t, body), 1)

	resp, body = s.do(t, http.MethodGet, "/api/public/projects/technology/React", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.Project](t, body), 1)

	resp, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/projects/%d", created.ID), admin, map[string]any{
		"title":    "Portfolio v2",
		"featured": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, item, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Portfolio v2", decode[dto.Project](t, body).Title)

	resp, body = s.do(t, http.MethodGet, "/api/public/projects/featured", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.Project](t, body))

	resp, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/projects/%d", created.ID), admin, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, item, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	e := decode[handler.ErrorResponse](t, body)
	assert.Equal(t, fmt.Sprintf("Project not found with id: %d", created.ID), e.Message)
	assert.Equal(t, "Resource not found", e.Details)
	assert.Equal(t, item, e.Path)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)
	admin := token(t, "ADMIN")

	tests := []struct {
		name      string
		method    string
		path      string
		body      any
		wantField string
	}{
		{"non-numeric project id", http.MethodGet, "/api/public/projects/abc", nil, "id"},
		{"non-numeric skill level", http.MethodGet, "/api/public/skills/level/high", nil, "level"},
		{"blank project title", http.MethodPost, "/api/admin/projects", map[string]any{"title": " "}, "title"},
		{"skill without name", http.MethodPost, "/api/admin/skills", map[string]any{"category": "x"}, "name"},
		{"experience without position", http.MethodPost, "/api/admin/experiences", map[string]any{"company": "Acme"}, "position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, tt.method, tt.path, admin, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

			e := decode[handler.ErrorResponse](t, body)
			assert.Equal(t, "Validation failed", e.Message)
			assert.Contains(t, e.ValidationErrors, tt.wantField)
		})
	}
}

func TestSkillsByLevel(t *testing.T) {
	s := newTestServer(t)
	admin := token(t, "ADMIN")

	for name, level := range map[string]int{"Go": 5, "SQL": 3, "CSS": 2} {
		resp, body := s.do(t, http.MethodPost, "/api/admin/skills", admin, map[string]any{
			"name": name, "category": "dev", "proficiencyLevel": level,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	resp, body := s.do(t, http.MethodGet, "/api/public/skills/level/3", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	skills := decode[[]dto.Skill](t, body)
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0].Name, "highest proficiency first")
	assert.Equal(t, "SQL", skills[1].Name)
}

func TestProfiles(t *testing.T) {
	s := newTestServer(t)
	admin := token(t, "ADMIN")
	profile := map[string]any{"fullName": "Jane Doe", "username": "jane", "email": "jane@example.com"}

	resp, body := s.do(t, http.MethodPost, "/api/admin/profiles", admin, profile)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[dto.UserProfile](t, body)

	resp, body = s.do(t, http.MethodPost, "/api/admin/profiles", admin, profile)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Resource already exists", decode[handler.ErrorResponse](t, body).Details)

	resp, body = s.do(t, http.MethodGet, "/api/public/profiles/jane", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decode[dto.UserProfile](t, body).ID)

	resp, _ = s.do(t, http.MethodGet, "/api/public/profiles/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/admin/profiles", "", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/admin/profiles", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserProfile](t, body), 1)
}

func TestRegisterIsPublic(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodPost, "/api/public/auth/register", "", map[string]any{
		"username": "jane", "email": "jane@example.com",
		"firstName": "Jane", "lastName": "Doe", "password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	res := decode[dto.RegistrationResult](t, body)
	assert.Equal(t, "User registered successfully", res.Message)
	assert.Equal(t, "jane", res.Username)
	assert.Equal(t, "Doe", s.registration.got.LastName)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"UP"}`, string(body))

	resp, body = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "portfolio_http_requests_total")
}

package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/config"
	"github.com/staffpicks/staffpicks-server/internal/media/images"
	"github.com/staffpicks/staffpicks-server/internal/metadata/isbndb"
	"github.com/staffpicks/staffpicks-server/internal/search"
	"github.com/staffpicks/staffpicks-server/internal/service"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

const (
	testCookieName = "staffpicks_session"
	testPassword   = "Sup3rSecret"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   any    `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
	st  *store.Store
}

// newTestServer builds a full server against a throwaway database. The
// signup throttle is left wide open; rate limit tests tighten it.
func newTestServer(t *testing.T) *testServer {
	return newTestServerCfg(t, nil)
}

func newTestServerCfg(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	tmp := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(filepath.Join(tmp, "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewSearchIndex(search.Options{DataPath: tmp, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	st.SetSearchIndexer(index)

	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName:       testCookieName,
			Duration:         2 * time.Hour,
			MaxLoginAttempts: 5,
			LockoutDuration:  15 * time.Minute,
		},
		Signup: config.SignupConfig{
			RatePerMinute: 6000,
			Burst:         1000,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	sessions, err := auth.NewSessionService(strings.Repeat("ab", 32), cfg.Session.Duration)
	require.NoError(t, err)

	validate := validation.New()
	services := &Services{
		Auth:    service.NewAuthService(st, sessions, validate, cfg.Session.MaxLoginAttempts, cfg.Session.LockoutDuration, logger),
		Company: service.NewCompanyService(st, validate, logger),
		Store:   service.NewStoreService(st, validate, logger),
		User:    service.NewUserService(st, validate, logger),
		Book:    service.NewBookService(st, validate, logger),
		List:    service.NewListService(st, validate, logger),
		Profile: service.NewProfileService(st, validate, logger),
		Search:  service.NewSearchService(st, index, logger),
	}

	uploader := images.NewUploader(images.CloudinaryConfig{}, logger)
	isbn := isbndb.NewClient("", "", logger)

	srv := NewServer(cfg, st, services, uploader, isbn, logger)
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		api:    humatest.Wrap(t, srv.api),
		st:     st,
	}
}

// signup bootstraps a tenant and returns the session cookie header value.
func (ts *testServer) signup(t *testing.T, companyName, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/auth/signup", map[string]any{
		"companyName":     companyName,
		"firstName":       "Robin",
		"lastName":        "Page",
		"email":           email,
		"password":        testPassword,
		"confirmPassword": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "signup failed: %s", resp.Body.String())
	return cookieHeader(t, resp)
}

// login authenticates and returns the session cookie header value.
func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())
	return cookieHeader(t, resp)
}

// cookieHeader extracts the session cookie from a response as a request
// Cookie header line.
func cookieHeader(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	c := sessionCookie(t, resp)
	require.NotEmpty(t, c.Value)
	return "Cookie: " + testCookieName + "=" + c.Value
}

// sessionCookie finds the session Set-Cookie on a response.
func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := http.Response{Header: resp.Header()}
	for _, c := range res.Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", testCookieName)
	return nil
}

package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffpicks/staffpicks-server/internal/config"
	"github.com/staffpicks/staffpicks-server/internal/domain"
)

func TestSignup_CreatesTenantAndSession(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Post("/api/auth/signup", map[string]any{
		"companyName":     "Dog-Eared Books",
		"firstName":       "Robin",
		"lastName":        "Page",
		"email":           "robin@dogeared.example",
		"password":        testPassword,
		"confirmPassword": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var envelope testEnvelope[SessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, 1, envelope.Version)
	assert.True(t, envelope.Success)
	assert.Equal(t, "/dashboard/settings/onboarding", envelope.Data.RedirectURL)
	require.NotNil(t, envelope.Data.User)
	assert.Equal(t, domain.RoleCompanyAdmin, envelope.Data.User.Role)
	assert.Empty(t, envelope.Data.User.PasswordHash)
	require.NotNil(t, envelope.Data.Company)
	assert.Equal(t, "dog-eared-books", envelope.Data.Company.Slug)
	assert.Equal(t, domain.CompanyStatusTrial, envelope.Data.Company.Status)

	c := sessionCookie(t, resp)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestSignup_RateLimited(t *testing.T) {
	ts := newTestServerCfg(t, func(cfg *config.Config) {
		cfg.Signup.RatePerMinute = 0.01
		cfg.Signup.Burst = 2
	})

	body := func(email string) map[string]any {
		return map[string]any{
			"companyName":     "Throttle Books",
			"firstName":       "Robin",
			"lastName":        "Page",
			"email":           email,
			"password":        testPassword,
			"confirmPassword": testPassword,
		}
	}

	require.Equal(t, http.StatusCreated, ts.api.Post("/api/auth/signup", body("one@throttle.example")).Code)
	require.Equal(t, http.StatusCreated, ts.api.Post("/api/auth/signup", body("two@throttle.example")).Code)

	resp := ts.api.Post("/api/auth/signup", body("three@throttle.example"))
	assert.Equal(t, http.StatusTooManyRequests, resp.Code, resp.Body.String())
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "Login Books", "owner@login.example")

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "owner@login.example",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[SessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "/dashboard", envelope.Data.RedirectURL)
	assert.NotEmpty(t, sessionCookie(t, resp).Value)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "Wrong Books", "owner@wrong.example")

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "owner@wrong.example",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_LockoutAnswers423(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "Lockout Books", "owner@lockout.example")

	bad := map[string]any{"email": "owner@lockout.example", "password": "wrong-every-time"}
	for i := 0; i < 4; i++ {
		resp := ts.api.Post("/api/auth/login", bad)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	}

	// The attempt that reaches the limit reports the lock.
	resp := ts.api.Post("/api/auth/login", bad)
	require.Equal(t, http.StatusLocked, resp.Code, resp.Body.String())

	// The correct password is refused the same way while locked.
	resp = ts.api.Post("/api/auth/login", map[string]any{
		"email":    "owner@lockout.example",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusLocked, resp.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "Logout Books", "owner@logout.example")

	resp := ts.api.Post("/api/auth/logout", cookie)
	require.Equal(t, http.StatusOK, resp.Code)

	c := sessionCookie(t, resp)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)

	// GET works too, for plain links.
	resp = ts.api.Get("/api/auth/logout")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestSession_RequiredForAPI(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/api/books")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/books", "Cookie: "+testCookieName+"=garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSession_DeletedUserRejectedAndCookieCleared(t *testing.T) {
	ts := newTestServer(t)
	adminCookie := ts.signup(t, "Purge Books", "owner@purge.example")

	create := ts.api.Post("/api/users", adminCookie, map[string]any{
		"email":     "temp@purge.example",
		"password":  testPassword,
		"role":      "librarian",
		"storeId":   defaultStoreID(t, ts, adminCookie),
		"firstName": "Temp",
		"lastName":  "Staff",
	})
	require.Equal(t, http.StatusCreated, create.Code, create.Body.String())

	var created testEnvelope[*domain.User]
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))

	staffCookie := ts.login(t, "temp@purge.example", testPassword)

	del := ts.api.Post("/api/users/"+created.Data.ID+"/delete", adminCookie)
	require.Equal(t, http.StatusOK, del.Code, del.Body.String())

	// The stale session stops working immediately and the cookie is
	// evicted on the way out.
	resp := ts.api.Get("/api/books", staffCookie)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Negative(t, sessionCookie(t, resp).MaxAge)
}

func TestHealth_NoSessionNeeded(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "ok", envelope.Data.Status)
}

// defaultStoreID looks up the tenant's bootstrap store over the API.
func defaultStoreID(t *testing.T, ts *testServer, cookie string) string {
	t.Helper()

	resp := ts.api.Get("/api/stores", cookie)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[struct {
		Stores []*domain.Store `json:"stores"`
	}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Stores)
	return envelope.Data.Stores[0].ID
}

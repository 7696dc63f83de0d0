package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func TestSignup_BootstrapsTenant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Signup(ctx, service.SignupRequest{
		CompanyName:     "Dog-Eared Books",
		FirstName:       "Avery",
		LastName:        "Admin",
		Email:           "avery@dogeared.example",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, "/dashboard/settings/onboarding", resp.RedirectURL)
	assert.NotEmpty(t, resp.Token)

	assert.Equal(t, domain.CompanyStatusTrial, resp.Company.Status)
	assert.Equal(t, "dog-eared-books", resp.Company.Slug)
	require.NotNil(t, resp.Company.TrialEndsAt)
	assert.WithinDuration(t, time.Now().Add(domain.TrialPeriod), *resp.Company.TrialEndsAt, time.Minute)

	assert.Equal(t, domain.RoleCompanyAdmin, resp.User.Role)
	assert.Equal(t, domain.UserStatusActive, resp.User.Status)
	assert.Empty(t, resp.User.PasswordHash)

	storefront, err := env.store.GetStore(ctx, resp.User.StoreID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStoreCode, storefront.Code)
	assert.Equal(t, resp.Company.ID, storefront.CompanyID)
}

func TestSignup_SlugCollisionGetsSuffix(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, first, _ := env.signup(t, "Chapter One", "one@books.example")
	assert.Equal(t, "chapter-one", first.Slug)

	resp, err := env.auth.Signup(ctx, service.SignupRequest{
		CompanyName:     "Chapter One",
		FirstName:       "Briar",
		LastName:        "Blake",
		Email:           "two@books.example",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "chapter-one-1", resp.Company.Slug)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "First Editions", "taken@books.example")

	_, err := env.auth.Signup(context.Background(), service.SignupRequest{
		CompanyName:     "Second Editions",
		FirstName:       "Briar",
		LastName:        "Blake",
		Email:           "taken@books.example",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestSignup_PasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Signup(context.Background(), service.SignupRequest{
		CompanyName:     "Mismatch Books",
		FirstName:       "Briar",
		LastName:        "Blake",
		Email:           "briar@books.example",
		Password:        testPassword,
		ConfirmPassword: testPassword + "x",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Login Books", "login@books.example")

	resp, err := env.auth.Login(context.Background(), service.LoginRequest{
		Email:     "login@books.example",
		Password:  testPassword,
		IPAddress: "203.0.113.9",
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, resp.User.ID)
	assert.Equal(t, "/dashboard", resp.RedirectURL)
	assert.NotEmpty(t, resp.Token)

	stored, err := env.store.GetUser(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", stored.LastLoginIP)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Wrong Books", "wrong@books.example")

	_, err := env.auth.Login(context.Background(), service.LoginRequest{
		Email:    "wrong@books.example",
		Password: "Wr0ngPassword",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), service.LoginRequest{
		Email:    "nobody@books.example",
		Password: testPassword,
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Lockout Books", "locked@books.example")
	ctx := context.Background()

	for i := 0; i < testMaxAttempts-1; i++ {
		_, err := env.auth.Login(ctx, service.LoginRequest{
			Email:    "locked@books.example",
			Password: "Wr0ngPassword",
		})
		assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
	}

	// The attempt that reaches the threshold reports the lockout.
	_, err := env.auth.Login(ctx, service.LoginRequest{
		Email:    "locked@books.example",
		Password: "Wr0ngPassword",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrLocked))

	// Even the correct password is refused while locked.
	_, err = env.auth.Login(ctx, service.LoginRequest{
		Email:    "locked@books.example",
		Password: testPassword,
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrLocked))
}

func TestLogin_LockoutExpiresAndResets(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Unlock Books", "unlock@books.example")
	ctx := context.Background()

	for i := 0; i < testMaxAttempts; i++ {
		_, err := env.auth.Login(ctx, service.LoginRequest{
			Email:    "unlock@books.example",
			Password: "Wr0ngPassword",
		})
		assert.Error(t, err)
	}

	// Wind the lockout clock past the window instead of sleeping it out.
	locked, err := env.store.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, locked.LockedUntil)
	past := time.Now().Add(-time.Minute)
	locked.LockedUntil = &past
	require.NoError(t, env.store.UpdateUser(ctx, locked))

	// Once the window has elapsed, the correct password logs in and
	// clears the failure counter.
	resp, err := env.auth.Login(ctx, service.LoginRequest{
		Email:    "unlock@books.example",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, resp.User.ID)

	fresh, err := env.store.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.FailedLoginAttempts)
	assert.Nil(t, fresh.LockedUntil)
}

func TestLogin_InactiveUserRefused(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Inactive Books", "inactive@books.example")
	ctx := context.Background()

	stored, err := env.store.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	stored.Status = domain.UserStatusInactive
	require.NoError(t, env.store.UpdateUser(ctx, stored))

	_, err = env.auth.Login(ctx, service.LoginRequest{
		Email:    "inactive@books.example",
		Password: testPassword,
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
}

func TestVerifySession_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Session Books", "session@books.example")
	ctx := context.Background()

	resp, err := env.auth.Login(ctx, service.LoginRequest{
		Email:    "session@books.example",
		Password: testPassword,
	})
	require.NoError(t, err)

	user, access, err := env.auth.VerifySession(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, resp.User.ID, access.UserID)
	assert.Equal(t, domain.RoleCompanyAdmin, access.Role)
}

func TestVerifySession_DeletedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Gone Books", "gone@books.example")
	ctx := context.Background()

	resp, err := env.auth.Login(ctx, service.LoginRequest{
		Email:    "gone@books.example",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, env.store.SoftDeleteUser(ctx, admin.ID))

	_, _, err = env.auth.VerifySession(ctx, resp.Token)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestVerifySession_SuspendedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Paused Books", "paused@books.example")
	ctx := context.Background()

	resp, err := env.auth.Login(ctx, service.LoginRequest{
		Email:    "paused@books.example",
		Password: testPassword,
	})
	require.NoError(t, err)

	stored, err := env.store.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	stored.Status = domain.UserStatusSuspended
	require.NoError(t, env.store.UpdateUser(ctx, stored))

	_, _, err = env.auth.VerifySession(ctx, resp.Token)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestVerifySession_GarbageToken(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.VerifySession(context.Background(), "v4.local.not-a-real-token")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	domainerrors "github.com/staffpicks/staffpicks-server/internal/errors"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func TestUpdateProfile_Basic(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Profile Books", "profile@books.example")
	ctx := context.Background()
	access := scope.ForUser(admin)

	updated, err := env.profile.UpdateProfile(ctx, access, service.UpdateProfileRequest{
		FirstName:   "Avery",
		LastName:    "Admin",
		DisplayName: "Ave",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ave", updated.DisplayName)
	assert.Empty(t, updated.PasswordHash)

	got, err := env.profile.GetProfile(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, "Ave", got.DisplayName)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Password Books", "pw@books.example")
	ctx := context.Background()
	access := scope.ForUser(admin)

	// Wrong current password.
	_, err := env.profile.UpdateProfile(ctx, access, service.UpdateProfileRequest{
		FirstName:       "Avery",
		LastName:        "Admin",
		CurrentPassword: "Wr0ngPassword",
		NewPassword:     "N3wSecretPW",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))

	// Missing current password.
	_, err = env.profile.UpdateProfile(ctx, access, service.UpdateProfileRequest{
		FirstName:   "Avery",
		LastName:    "Admin",
		NewPassword: "N3wSecretPW",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// Correct change takes effect at the next login.
	_, err = env.profile.UpdateProfile(ctx, access, service.UpdateProfileRequest{
		FirstName:       "Avery",
		LastName:        "Admin",
		CurrentPassword: testPassword,
		NewPassword:     "N3wSecretPW",
	})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, service.LoginRequest{Email: "pw@books.example", Password: testPassword})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
	_, err = env.auth.Login(ctx, service.LoginRequest{Email: "pw@books.example", Password: "N3wSecretPW"})
	require.NoError(t, err)
}

func TestUpdateCompany_OnlyAdminsWrite(t *testing.T) {
	env := newTestEnv(t)
	admin, company, storefront := env.signup(t, "Settings Books", "settings@books.example")
	librarian := env.addStaff(t, admin, domain.RoleLibrarian, storefront.ID, "lib@settings.example")
	ctx := context.Background()

	updated, err := env.company.UpdateCompany(ctx, scope.ForUser(admin), service.UpdateCompanyRequest{
		Name:  "Settings Books, Ltd.",
		Phone: "+1 555 0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Settings Books, Ltd.", updated.Name)
	assert.Equal(t, company.Slug, updated.Slug)

	librarianFull, err := env.store.GetUser(ctx, librarian.ID)
	require.NoError(t, err)
	_, err = env.company.UpdateCompany(ctx, scope.ForUser(librarianFull), service.UpdateCompanyRequest{
		Name: "Takeover Books",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))

	got, err := env.company.GetCompany(ctx, scope.ForUser(librarianFull))
	require.NoError(t, err)
	assert.Equal(t, "Settings Books, Ltd.", got.Name)
}

package service_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/service"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

const (
	testPassword    = "Sup3rSecret"
	testMaxAttempts = 5
	testLockout     = 15 * time.Minute
)

type testEnv struct {
	store    *store.Store
	auth     *service.AuthService
	users    *service.UserService
	stores   *service.StoreService
	books    *service.BookService
	lists    *service.ListService
	company  *service.CompanyService
	profile  *service.ProfileService
	sessions *auth.SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "db")
	st, err := store.New(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sessions, err := auth.NewSessionService(strings.Repeat("ab", 32), 2*time.Hour)
	require.NoError(t, err)

	v := validation.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store:    st,
		auth:     service.NewAuthService(st, sessions, v, testMaxAttempts, testLockout, log),
		users:    service.NewUserService(st, v, log),
		stores:   service.NewStoreService(st, v, log),
		books:    service.NewBookService(st, v, log),
		lists:    service.NewListService(st, v, log),
		company:  service.NewCompanyService(st, v, log),
		profile:  service.NewProfileService(st, v, log),
		sessions: sessions,
	}
}

// signup bootstraps a tenant and returns its companyAdmin plus the
// default store created alongside.
func (e *testEnv) signup(t *testing.T, companyName, email string) (*domain.User, *domain.Company, *domain.Store) {
	t.Helper()

	resp, err := e.auth.Signup(context.Background(), service.SignupRequest{
		CompanyName:     companyName,
		FirstName:       "Avery",
		LastName:        "Admin",
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	storefront, err := e.store.GetStore(context.Background(), resp.User.StoreID)
	require.NoError(t, err)
	return resp.User, resp.Company, storefront
}

// addStaff creates a user in the company through the admin path.
func (e *testEnv) addStaff(t *testing.T, admin *domain.User, role domain.Role, storeID, email string) *domain.User {
	t.Helper()

	user, err := e.users.CreateUser(context.Background(), scope.ForUser(admin), service.CreateUserRequest{
		Email:     email,
		Password:  testPassword,
		Role:      role,
		StoreID:   storeID,
		FirstName: "Sam",
		LastName:  "Staff",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) addBook(t *testing.T, creator *domain.User, isbn, title string) *domain.Book {
	t.Helper()

	book, err := e.books.CreateBook(context.Background(), scope.ForUser(creator), service.CreateBookRequest{
		ISBN:     isbn,
		BookData: domain.BookData{Title: title},
	})
	require.NoError(t, err)
	return book
}

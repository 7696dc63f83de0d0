package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/id"
	"github.com/staffpicks/staffpicks-server/internal/store"
)

func newUser(companyID, storeID string, role domain.Role, email string) *domain.User {
	u := &domain.User{
		CompanyID: companyID,
		StoreID:   storeID,
		Email:     email,
		Role:      role,
		Status:    domain.UserStatusActive,
		FirstName: "Test",
		LastName:  "User",
	}
	u.ID = id.MustGenerate("usr")
	return u
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	first := newUser("cmp-1", "sto-1", domain.RoleLibrarian, "Staff@Example.com")
	require.NoError(t, s.CreateUser(ctx, first))

	dup := newUser("cmp-1", "sto-1", domain.RoleLibrarian, "staff@example.COM")
	err := s.CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrEmailExists)

	// Lookup is case-insensitive too.
	found, err := s.GetUserByEmail(ctx, "STAFF@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestUsers_SoftDeleteHidesButKeepsEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	u := newUser("cmp-1", "sto-1", domain.RoleLibrarian, "gone@example.com")
	require.NoError(t, s.CreateUser(ctx, u))
	require.NoError(t, s.SoftDeleteUser(ctx, u.ID))

	_, err := s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = s.GetUserByEmail(ctx, "gone@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	// The address stays claimed by the deleted account.
	again := newUser("cmp-1", "sto-1", domain.RoleLibrarian, "gone@example.com")
	err = s.CreateUser(ctx, again)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUsers_ListByCompanyExcludesDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	kept := newUser("cmp-1", "sto-1", domain.RoleLibrarian, "kept@example.com")
	gone := newUser("cmp-1", "sto-1", domain.RoleLibrarian, "bye@example.com")
	other := newUser("cmp-2", "sto-9", domain.RoleLibrarian, "other@example.com")
	require.NoError(t, s.CreateUser(ctx, kept))
	require.NoError(t, s.CreateUser(ctx, gone))
	require.NoError(t, s.CreateUser(ctx, other))
	require.NoError(t, s.SoftDeleteUser(ctx, gone.ID))

	live, err := s.ListUsersByCompany(ctx, "cmp-1")
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, kept.ID, live[0].ID)

	all, err := s.ListAllUsersByCompany(ctx, "cmp-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCompanies_SlugUnique(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	c := domain.NewTrialCompany("City Lights Books", "city-lights-books")
	c.ID = id.MustGenerate("cmp")
	require.NoError(t, s.CreateCompany(ctx, c))

	taken, err := s.CompanySlugExists(ctx, "city-lights-books")
	require.NoError(t, err)
	assert.True(t, taken)

	dup := domain.NewTrialCompany("City Lights Books II", "city-lights-books")
	dup.ID = id.MustGenerate("cmp")
	err = s.CreateCompany(ctx, dup)
	assert.ErrorIs(t, err, store.ErrCompanySlugExists)
}

func TestStorefronts_CodeUniquePerCompany(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	main1 := domain.NewStore("cmp-1", "Main Street", "main")
	main1.ID = id.MustGenerate("sto")
	require.NoError(t, s.CreateStore(ctx, main1))

	// Same code in another company is fine.
	main2 := domain.NewStore("cmp-2", "Main Street", "main")
	main2.ID = id.MustGenerate("sto")
	require.NoError(t, s.CreateStore(ctx, main2))

	dup := domain.NewStore("cmp-1", "Main Annex", "main")
	dup.ID = id.MustGenerate("sto")
	err := s.CreateStore(ctx, dup)
	assert.ErrorIs(t, err, store.ErrStoreCodeExists)

	taken, err := s.StoreCodeExists(ctx, "cmp-1", "main")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = s.StoreCodeExists(ctx, "cmp-3", "main")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStorefronts_DeleteBlockedWhileStaffed(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	st := domain.NewStore("cmp-1", "Main Street", "main")
	st.ID = id.MustGenerate("sto")
	require.NoError(t, s.CreateStore(ctx, st))

	u := newUser("cmp-1", st.ID, domain.RoleLibrarian, "clerk@example.com")
	require.NoError(t, s.CreateUser(ctx, u))

	err := s.DeleteStore(ctx, st.ID)
	require.ErrorIs(t, err, store.ErrStoreHasUsers)

	// Unassigning the last user unblocks deletion. Soft-deleted users
	// do not count as assigned.
	require.NoError(t, s.SoftDeleteUser(ctx, u.ID))
	require.NoError(t, s.DeleteStore(ctx, st.ID))

	_, err = s.GetStore(ctx, st.ID)
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func newBook(companyID, storeID, owner, isbn string) *domain.Book {
	b := &domain.Book{
		CompanyID:   companyID,
		StoreID:     storeID,
		ISBN:        isbn,
		OwnerUserID: owner,
		CreatedBy:   owner,
		BookData: domain.BookData{
			Title:   "The Left Hand of Darkness",
			Authors: []string{"Ursula K. Le Guin"},
		},
	}
	b.ID = id.MustGenerate("book")
	return b
}

func TestBooks_ISBNUniquePerOwner(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	b := newBook("cmp-1", "sto-1", "usr-1", "9780441478125")
	require.NoError(t, s.CreateBook(ctx, b))

	dup := newBook("cmp-1", "sto-1", "usr-1", "9780441478125")
	err := s.CreateBook(ctx, dup)
	require.ErrorIs(t, err, store.ErrBookExists)

	// A different owner may carry the same ISBN.
	other := newBook("cmp-1", "sto-1", "usr-2", "9780441478125")
	require.NoError(t, s.CreateBook(ctx, other))
}

func TestBooks_HardDeleteFreesISBN(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	b := newBook("cmp-1", "sto-1", "usr-1", "9780441478125")
	require.NoError(t, s.CreateBook(ctx, b))
	require.NoError(t, s.DeleteBook(ctx, b.ID))

	_, err := s.GetBook(ctx, b.ID)
	require.ErrorIs(t, err, store.ErrBookNotFound)

	// Hard delete releases the index entry, unlike user soft delete.
	again := newBook("cmp-1", "sto-1", "usr-1", "9780441478125")
	require.NoError(t, s.CreateBook(ctx, again))
}

func newList(companyID, owner, slug string) *domain.List {
	l := &domain.List{
		CompanyID:   companyID,
		StoreID:     "sto-1",
		OwnerUserID: owner,
		CreatedBy:   owner,
		Title:       "Staff Picks",
		Slug:        slug,
		Visibility:  domain.ListVisibilityDraft,
	}
	l.ID = id.MustGenerate("list")
	return l
}

func TestLists_SoftDeleteHides(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	l := newList("cmp-1", "usr-1", "staff-picks")
	require.NoError(t, s.CreateList(ctx, l))
	require.NoError(t, s.SoftDeleteList(ctx, l.ID))

	_, err := s.GetList(ctx, l.ID)
	assert.ErrorIs(t, err, store.ErrListNotFound)

	live, err := s.ListListsByCompany(ctx, "cmp-1")
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestLists_SlugExistsIgnoresDeleted(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	l := newList("cmp-1", "usr-1", "staff-picks")
	require.NoError(t, s.CreateList(ctx, l))

	taken, err := s.ListSlugExists(ctx, "cmp-1", "usr-1", "staff-picks")
	require.NoError(t, err)
	assert.True(t, taken)

	// Another owner's namespace is separate.
	taken, err = s.ListSlugExists(ctx, "cmp-1", "usr-2", "staff-picks")
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, s.SoftDeleteList(ctx, l.ID))
	taken, err = s.ListSlugExists(ctx, "cmp-1", "usr-1", "staff-picks")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestLists_ContainingBook(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	withBook := newList("cmp-1", "usr-1", "with-book")
	withBook.AddItem("book-a", "")
	without := newList("cmp-1", "usr-1", "without-book")
	require.NoError(t, s.CreateList(ctx, withBook))
	require.NoError(t, s.CreateList(ctx, without))

	matches, err := s.ListsContainingBook(ctx, "cmp-1", "book-a")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, withBook.ID, matches[0].ID)
}

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

func TestCreateBook_LibrarianAlwaysAssignedToSelf(t *testing.T) {
	env := newTestEnv(t)
	admin, _, storefront := env.signup(t, "Assign Books", "assign@books.example")
	librarian := env.addStaff(t, admin, domain.RoleLibrarian, storefront.ID, "creator@books.example")
	ctx := context.Background()

	librarianFull, err := env.store.GetUser(ctx, librarian.ID)
	require.NoError(t, err)
	book, err := env.books.CreateBook(ctx, scope.ForUser(librarianFull), service.CreateBookRequest{
		ISBN:     "9780140449136",
		BookData: domain.BookData{Title: "The Odyssey"},
		// Librarian-supplied assignments are dropped, but self is kept.
		AssignedTo: []string{admin.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{librarian.ID}, book.AssignedTo)
	assert.Equal(t, librarian.ID, book.OwnerUserID)
}

func TestCreateBook_DuplicateISBNSameOwner(t *testing.T) {
	env := newTestEnv(t)
	admin, _, _ := env.signup(t, "Dup Books", "dup@books.example")
	ctx := context.Background()
	access := scope.ForUser(admin)

	_, err := env.books.CreateBook(ctx, access, service.CreateBookRequest{
		ISBN:     "9780140449136",
		BookData: domain.BookData{Title: "The Odyssey"},
	})
	require.NoError(t, err)

	_, err = env.books.CreateBook(ctx, access, service.CreateBookRequest{
		ISBN:     "9780140449136",
		BookData: domain.BookData{Title: "The Odyssey Again"},
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestGetBook_LibrarianVisibilityKeysOnAssignment(t *testing.T) {
	env := newTestEnv(t)
	admin, _, storefront := env.signup(t, "Sight Books", "sight@books.example")
	librarian := env.addStaff(t, admin, domain.RoleLibrarian, storefront.ID, "seer@books.example")
	ctx := context.Background()

	librarianFull, err := env.store.GetUser(ctx, librarian.ID)
	require.NoError(t, err)
	libAccess := scope.ForUser(librarianFull)

	book, err := env.books.CreateBook(ctx, libAccess, service.CreateBookRequest{
		ISBN:     "9780140449136",
		BookData: domain.BookData{Title: "The Odyssey"},
	})
	require.NoError(t, err)

	// Visible while assigned.
	_, err = env.books.GetBook(ctx, libAccess, book.ID)
	require.NoError(t, err)

	// An admin unassigning the librarian hides the book from them, even
	// though they created it.
	_, err = env.books.UpdateBook(ctx, scope.ForUser(admin), book.ID, service.UpdateBookRequest{
		BookData:   book.BookData,
		AssignedTo: nil,
	})
	require.NoError(t, err)

	_, err = env.books.GetBook(ctx, libAccess, book.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestListBooks_ExcludesDeletedAuthors(t *testing.T) {
	env := newTestEnv(t)
	admin, _, storefront := env.signup(t, "Author Books", "authors@books.example")
	librarian := env.addStaff(t, admin, domain.RoleLibrarian, storefront.ID, "author@books.example")
	ctx := context.Background()
	adminAccess := scope.ForUser(admin)

	librarianFull, err := env.store.GetUser(ctx, librarian.ID)
	require.NoError(t, err)
	authored, err := env.books.CreateBook(ctx, scope.ForUser(librarianFull), service.CreateBookRequest{
		ISBN:     "9780140449136",
		BookData: domain.BookData{Title: "The Odyssey"},
	})
	require.NoError(t, err)
	env.addBook(t, admin, "9780553213119", "Moby-Dick")

	// Suspension does not hide the suspended author's books.
	_, err = env.users.ChangeStatus(ctx, adminAccess, librarian.ID, service.StatusActionSuspend)
	require.NoError(t, err)
	books, err := env.books.ListBooks(ctx, adminAccess, "")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// Soft deletion does.
	require.NoError(t, env.users.DeleteUser(ctx, adminAccess, librarian.ID))
	books, err = env.books.ListBooks(ctx, adminAccess, "")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.NotEqual(t, authored.ID, books[0].ID)

	_, err = env.books.GetBook(ctx, adminAccess, authored.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestDeleteBook_StripsFromLists(t *testing.T) {
	env := newTestEnv(t)
	admin, _, storefront := env.signup(t, "Strip Books", "strip@books.example")
	storeAdmin := env.addStaff(t, admin, domain.RoleStoreAdmin, storefront.ID, "sa@strip.example")
	ctx := context.Background()

	storeAdminFull, err := env.store.GetUser(ctx, storeAdmin.ID)
	require.NoError(t, err)
	access := scope.ForUser(storeAdminFull)

	first := env.addBook(t, storeAdminFull, "9780140449136", "The Odyssey")
	second := env.addBook(t, storeAdminFull, "9780553213119", "Moby-Dick")

	list, err := env.lists.CreateList(ctx, access, service.CreateListRequest{Title: "Classics"})
	require.NoError(t, err)
	_, err = env.lists.AddItem(ctx, access, list.ID, service.AddItemRequest{BookID: first.ID})
	require.NoError(t, err)
	_, err = env.lists.AddItem(ctx, access, list.ID, service.AddItemRequest{BookID: second.ID})
	require.NoError(t, err)

	require.NoError(t, env.books.DeleteBook(ctx, access, first.ID))

	got, err := env.lists.GetList(ctx, access, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, second.ID, got.Items[0].BookID)
	assert.Equal(t, 0, got.Items[0].Position)

	// The freed ISBN can be reused.
	_, err = env.books.CreateBook(ctx, access, service.CreateBookRequest{
		ISBN:     "9780140449136",
		BookData: domain.BookData{Title: "The Odyssey, New Edition"},
	})
	require.NoError(t, err)
}

func TestListBooks_PlatformAdminSpansTenants(t *testing.T) {
	env := newTestEnv(t)
	adminA, companyA, _ := env.signup(t, "Span A", "spana@tenant.example")
	adminB, _, _ := env.signup(t, "Span B", "spanb@tenant.example")
	ctx := context.Background()

	env.addBook(t, adminA, "9780140449136", "The Odyssey")
	env.addBook(t, adminB, "9780553213119", "Moby-Dick")

	platform := scope.Access{UserID: "usr-platform", Role: domain.RoleAdmin}

	books, err := env.books.ListBooks(ctx, platform, "")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = env.books.ListBooks(ctx, platform, companyA.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, companyA.ID, books[0].CompanyID)
}

func TestGetBook_CrossTenantLooksMissing(t *testing.T) {
	env := newTestEnv(t)
	adminA, _, _ := env.signup(t, "Shelf A", "sa@tenant.example")
	adminB, _, _ := env.signup(t, "Shelf B", "sb@tenant.example")

	book := env.addBook(t, adminB, "9780140449136", "The Odyssey")

	_, err := env.books.GetBook(context.Background(), scope.ForUser(adminA), book.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

// Package main provides a tool to seed the database with demo data.
//
// It bootstraps a demo bookstore tenant with two store locations, a few
// staff accounts, a small catalog, and a couple of curated lists, which
// is enough to click through the dashboard locally.
//
// Usage:
//
//	DATA_PATH=~/StaffPicks/data go run ./cmd/seed
//
// All seeded accounts share the password printed at the end.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/staffpicks/staffpicks-server/internal/auth"
	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/logger"
	"github.com/staffpicks/staffpicks-server/internal/scope"
	"github.com/staffpicks/staffpicks-server/internal/service"
	"github.com/staffpicks/staffpicks-server/internal/store"
	"github.com/staffpicks/staffpicks-server/internal/validation"
)

const seedPassword = "Demo4Books!"

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/StaffPicks/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	st, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	quiet := logger.New(logger.Config{Writer: io.Discard})
	validate := validation.New()

	// The seed never issues cookies, so a throwaway session key is fine.
	sessions, err := auth.NewSessionService(
		"00000000000000000000000000000000deadbeefdeadbeefdeadbeefdeadbeef",
		time.Hour,
	)
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	authSvc := service.NewAuthService(st, sessions, validate, 5, 15*time.Minute, quiet.Logger)
	storeSvc := service.NewStoreService(st, validate, quiet.Logger)
	userSvc := service.NewUserService(st, validate, quiet.Logger)
	bookSvc := service.NewBookService(st, validate, quiet.Logger)
	listSvc := service.NewListService(st, validate, quiet.Logger)

	ctx := context.Background()

	signup, err := authSvc.Signup(ctx, service.SignupRequest{
		CompanyName:     "Dog-Eared Books",
		FirstName:       "Robin",
		LastName:        "Page",
		Email:           "robin@dogeared.example",
		Password:        seedPassword,
		ConfirmPassword: seedPassword,
	})
	if err != nil {
		log.Fatalf("Failed to create demo tenant: %v", err)
	}
	fmt.Printf("Created company %q (%s)\n", signup.Company.Name, signup.Company.ID)

	admin, err := st.GetUser(ctx, signup.User.ID)
	if err != nil {
		log.Fatalf("Failed to reload admin: %v", err)
	}
	adminAccess := scope.ForUser(admin)

	mainStore, err := storeSvc.ListStores(ctx, adminAccess, "")
	if err != nil || len(mainStore) == 0 {
		log.Fatalf("Failed to find bootstrap store: %v", err)
	}

	annex, err := storeSvc.CreateStore(ctx, adminAccess, service.CreateStoreRequest{
		Name: "Dog-Eared Annex",
		City: "Portland",
	})
	if err != nil {
		log.Fatalf("Failed to create annex store: %v", err)
	}

	staff := []service.CreateUserRequest{
		{Email: "mira@dogeared.example", Password: seedPassword, Role: domain.RoleStoreAdmin, StoreID: mainStore[0].ID, FirstName: "Mira", LastName: "Chen"},
		{Email: "leo@dogeared.example", Password: seedPassword, Role: domain.RoleLibrarian, StoreID: mainStore[0].ID, FirstName: "Leo", LastName: "Okafor", Sections: []string{"fiction", "staff-picks"}},
		{Email: "tess@dogeared.example", Password: seedPassword, Role: domain.RoleLibrarian, StoreID: annex.ID, FirstName: "Tess", LastName: "Nguyen", Sections: []string{"kids"}},
	}
	for _, req := range staff {
		if _, err := userSvc.CreateUser(ctx, adminAccess, req); err != nil {
			log.Fatalf("Failed to create user %s: %v", req.Email, err)
		}
	}
	fmt.Printf("Created %d staff accounts\n", len(staff))

	mira, err := st.GetUserByEmail(ctx, "mira@dogeared.example")
	if err != nil {
		log.Fatalf("Failed to reload storeAdmin: %v", err)
	}
	miraAccess := scope.ForUser(mira)

	leo, err := st.GetUserByEmail(ctx, "leo@dogeared.example")
	if err != nil {
		log.Fatalf("Failed to reload librarian: %v", err)
	}

	books := []service.CreateBookRequest{
		{
			ISBN: "9780140449136",
			BookData: domain.BookData{
				Title:   "The Odyssey",
				Authors: []string{"Homer"},
			},
			Genre:          "classics",
			Tone:           "epic",
			AgeGroup:       "adult",
			Recommendation: "The original road trip story. Emily Wilson's translation sings.",
			AssignedTo:     []string{leo.ID},
			Sections:       []string{"fiction"},
		},
		{
			ISBN: "9780062315007",
			BookData: domain.BookData{
				Title:   "The Alchemist",
				Authors: []string{"Paulo Coelho"},
			},
			Genre:      "fiction",
			Tone:       "hopeful",
			AgeGroup:   "adult",
			AssignedTo: []string{leo.ID},
			Sections:   []string{"staff-picks"},
		},
		{
			ISBN: "9780544003415",
			BookData: domain.BookData{
				Title:   "The Lord of the Rings",
				Authors: []string{"J.R.R. Tolkien"},
			},
			Genre:    "fantasy",
			Tone:     "epic",
			AgeGroup: "teen",
			Sections: []string{"fiction"},
		},
	}
	created := make([]*domain.Book, 0, len(books))
	for _, req := range books {
		book, err := bookSvc.CreateBook(ctx, miraAccess, req)
		if err != nil {
			log.Fatalf("Failed to create book %s: %v", req.ISBN, err)
		}
		created = append(created, book)
	}
	fmt.Printf("Created %d books\n", len(created))

	picks, err := listSvc.CreateList(ctx, miraAccess, service.CreateListRequest{
		Title:       "Staff Picks: Spring",
		Description: "What the front desk is pressing into your hands this season.",
		Visibility:  domain.ListVisibilityPublic,
		AssignedTo:  []string{leo.ID},
		Sections:    []string{"staff-picks"},
	})
	if err != nil {
		log.Fatalf("Failed to create list: %v", err)
	}
	for _, book := range created {
		if _, err := listSvc.AddItem(ctx, miraAccess, picks.ID, service.AddItemRequest{BookID: book.ID}); err != nil {
			log.Fatalf("Failed to add book to list: %v", err)
		}
	}

	if _, err := listSvc.CreateList(ctx, miraAccess, service.CreateListRequest{
		Title:       "Summer Reading (draft)",
		Description: "Work in progress.",
	}); err != nil {
		log.Fatalf("Failed to create draft list: %v", err)
	}
	fmt.Println("Created 2 curated lists")

	fmt.Println()
	fmt.Println("Demo accounts (password: " + seedPassword + ")")
	fmt.Println("  companyAdmin  robin@dogeared.example")
	fmt.Println("  storeAdmin    mira@dogeared.example")
	fmt.Println("  librarian     leo@dogeared.example")
	fmt.Println("  librarian     tess@dogeared.example")
}

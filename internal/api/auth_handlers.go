package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/domain"
	"github.com/staffpicks/staffpicks-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Staff login",
		Description: "Authenticates a staff member and sets the session cookie. Repeated failures lock the account temporarily.",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/auth/signup",
		Summary:       "Tenant signup",
		Description:   "Creates a company on trial, its default store, and the first companyAdmin account. Rate limited per client IP.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignup)

	// Logout is registered for both verbs: POST for API clients, GET so
	// a plain link works from server-rendered pages.
	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/auth/logout",
		Summary:     "Logout",
		Description: "Clears the session cookie",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout-get",
		Method:      http.MethodGet,
		Path:        "/api/auth/logout",
		Summary:     "Logout (link-friendly)",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)
}

// === DTOs ===

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body struct {
		Email    string `json:"email" doc:"Staff email address"`
		Password string `json:"password" doc:"Account password"`
	}
	RemoteAddr string `header:"X-Forwarded-For" doc:"Set by the proxy; first hop wins"`
}

// SessionResponse is the body returned by login and signup.
type SessionResponse struct {
	User        *domain.User    `json:"user" doc:"Authenticated staff account"`
	Company     *domain.Company `json:"company,omitempty" doc:"Created tenant (signup only)"`
	RedirectURL string          `json:"redirectUrl" doc:"Where the dashboard should navigate next"`
}

// SessionOutput wraps the session response and sets the cookie.
type SessionOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      SessionResponse
}

// SignupInput wraps the signup request for Huma.
type SignupInput struct {
	Body struct {
		CompanyName     string `json:"companyName" doc:"Bookstore business name"`
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		Email           string `json:"email" doc:"Admin email address"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	RemoteAddr string `header:"X-Forwarded-For"`
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps a simple message response.
type MessageOutput struct {
	Body MessageResponse
}

// LogoutOutput clears the cookie alongside the message body.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      MessageResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*SessionOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:     input.Body.Email,
		Password:  input.Body.Password,
		IPAddress: firstHop(input.RemoteAddr),
	})
	if err != nil {
		return nil, err
	}

	return &SessionOutput{
		SetCookie: s.sessionCookie(resp.Token),
		Body: SessionResponse{
			User:        resp.User,
			RedirectURL: resp.RedirectURL,
		},
	}, nil
}

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*SessionOutput, error) {
	resp, err := s.services.Auth.Signup(ctx, service.SignupRequest{
		CompanyName:     input.Body.CompanyName,
		FirstName:       input.Body.FirstName,
		LastName:        input.Body.LastName,
		Email:           input.Body.Email,
		Password:        input.Body.Password,
		ConfirmPassword: input.Body.ConfirmPassword,
		IPAddress:       firstHop(input.RemoteAddr),
	})
	if err != nil {
		return nil, err
	}

	return &SessionOutput{
		SetCookie: s.sessionCookie(resp.Token),
		Body: SessionResponse{
			User:        resp.User,
			Company:     resp.Company,
			RedirectURL: resp.RedirectURL,
		},
	}, nil
}

func (s *Server) handleLogout(_ context.Context, _ *struct{}) (*LogoutOutput, error) {
	return &LogoutOutput{
		SetCookie: s.expiredSessionCookie(),
		Body:      MessageResponse{Message: "logged out"},
	}, nil
}

// firstHop returns the first address in an X-Forwarded-For chain.
func firstHop(xff string) string {
	for i := 0; i < len(xff); i++ {
		if xff[i] == ',' {
			return xff[:i]
		}
	}
	return xff
}

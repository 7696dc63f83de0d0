// Package service implements the business operations behind the HTTP API.
// Services validate requests, apply the role scope, and translate store
// errors into coded domain errors; handlers stay thin.
package service

import (
	"github.com/staffpicks/staffpicks-server/internal/domain"
)

// redactUser strips fields that must never leave the server.
func redactUser(u *domain.User) *domain.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

func redactUsers(users []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, redactUser(u))
	}
	return out
}

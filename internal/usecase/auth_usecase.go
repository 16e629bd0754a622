// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authgate/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user with its generated identity.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the verified user whose snapshot the delivery layer
// attaches to the caller's session.
type LoginOutput struct {
	User *entity.User
}

// AuthUsecase defines the interface for credential verification operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// Session establishment and destruction stay in the delivery layer, next to
// the cookie they operate on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

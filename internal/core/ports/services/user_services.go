package services

import (
	"context"

	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	"github.com/BekhzodS/china_shop_app/internal/dto"
)

// UserSvcFacade defines registration, authentication and lookup of users.
type UserSvcFacade interface {
	// Register creates a new user with a bcrypt-hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Authenticate verifies email+password. Returns apperrors.ErrValidation
	// on bad credentials (indistinguishable from unknown email).
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvcFacade issues signed access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken returns a signed JWT for the user and its
	// lifetime in seconds.
	GenerateAccessToken(userID string) (string, int64, error)
}

package services

import (
	"context"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
	"github.com/rsinghcodes/banking_system/internal/dto"
)

// UserSvcFacade defines user management and authentication operations.
type UserSvcFacade interface {
	// CreateUser registers a new ACTIVE user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by its unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// SetUserStatus activates or deactivates a user.
	SetUserStatus(ctx context.Context, userID string, status domain.UserStatus, updatedBy string) error

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
)

// UserRepository defines persistence for user accounts.
//
// GetByEmail and GetByID return (nil, nil) when no user matches. Create must
// enforce email uniqueness atomically at write time and return
// errors.ErrUserExists on a duplicate; the registration flow's own lookup is
// advisory and not a substitute for that constraint.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID domain.UserID, phone, location string) error
}

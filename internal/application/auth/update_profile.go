package auth

import (
	"context"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
)

type UpdateProfileInput struct {
	UserID   domain.UserID
	Phone    string
	Location string
}

type UpdateProfileResult struct {
	User *domain.User
}

// UpdateProfile applies a partial update of the caller's own profile fields.
// The caller's identity has already been established by token verification in
// the HTTP layer; this use case does not re-verify the token.
type UpdateProfile struct {
	users ports.UserRepository
}

func NewUpdateProfile(users ports.UserRepository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

// Execute updates only the fields supplied with a non-empty value; omitted
// fields keep their prior value.
func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileResult, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	phone := user.Phone
	if input.Phone != "" {
		phone = input.Phone
	}
	location := user.Location
	if input.Location != "" {
		location = input.Location
	}
	if err := uc.users.UpdateProfile(ctx, user.ID, phone, location); err != nil {
		return nil, err
	}
	user.Phone = phone
	user.Location = location
	return &UpdateProfileResult{User: user}, nil
}

package auth

import (
	"context"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies credentials and issues a bearer token on success.
type Login struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	lockout ports.LoginLockoutStore
}

// NewLogin creates the login use case. lockout may be nil to disable
// failed-attempt lockout.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer, lockout: lockout}
}

// Execute looks the account up by email and verifies the password against the
// stored hash. Unknown email and wrong password produce the identical
// ErrInvalidCredentials so responses cannot be used to enumerate accounts.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domerrors.ErrMissingField
	}
	if uc.lockout != nil {
		if locked, _ := uc.lockout.IsLocked(ctx, input.Email); locked {
			return nil, domerrors.ErrAccountLocked
		}
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, input.Email)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, input.Email)
	}
	return &LoginResult{Token: token, User: user}, nil
}

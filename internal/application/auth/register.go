package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type RegisterResult struct {
	User *domain.User
}

// Register creates a new user account with a hashed password.
type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

// Execute validates the input, checks for an existing account, and persists a
// new user. The repository's unique constraint is the authoritative guard
// against concurrent duplicate registration; the lookup here only produces a
// friendlier error in the common case.
func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if strings.TrimSpace(input.Username) == "" || input.Email == "" || input.Password == "" {
		return nil, domerrors.ErrMissingField
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrMissingField
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     strings.TrimSpace(input.Username),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return &RegisterResult{User: user}, nil
}

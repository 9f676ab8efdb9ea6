package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
)

// fakeUserRepo is an in-memory UserRepository with an email unique constraint,
// mirroring the atomic insert-if-absent semantics the postgres repository
// provides.
type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User

	failGet    error
	failCreate error
	failUpdate error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domerrors.ErrUserExists
	}
	u := *user
	r.byID[u.ID.String()] = &u
	r.byEmail[u.Email] = &u
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID.String()]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, userID domain.UserID, phone, location string) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID.String()]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	u.Phone = phone
	u.Location = location
	return nil
}

// fakeHasher produces a reversible marker instead of a real hash so tests can
// assert what was stored without argon2 cost.
type fakeHasher struct {
	failHash error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.failHash != nil {
		return "", h.failHash
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeIssuer issues predictable tokens of the form "token-for:<id>".
type fakeIssuer struct {
	failIssue error
}

func (i *fakeIssuer) Issue(userID string) (string, error) {
	if i.failIssue != nil {
		return "", i.failIssue
	}
	return "token-for:" + userID, nil
}

func (i *fakeIssuer) Verify(tokenString string) (string, error) {
	const prefix = "token-for:"
	if len(tokenString) <= len(prefix) || tokenString[:len(prefix)] != prefix {
		return "", domerrors.ErrInvalidToken
	}
	return tokenString[len(prefix):], nil
}

var errStore = errors.New("store unavailable")

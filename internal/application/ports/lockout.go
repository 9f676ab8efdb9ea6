package ports

import "context"

// LoginLockoutStore tracks failed login attempts per email and reports when
// an account is temporarily locked.
type LoginLockoutStore interface {
	IsLocked(ctx context.Context, email string) (locked bool, retryAfterSeconds int)
	RecordFailure(ctx context.Context, email string)
	RecordSuccess(ctx context.Context, email string)
}

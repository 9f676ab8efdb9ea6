package lockout

import (
	"context"
	"testing"
	"time"
)

func TestLockAfterMaxFailures(t *testing.T) {
	s := NewMemoryStore(3, 900)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		s.RecordFailure(ctx, "a@x.com")
		if locked, _ := s.IsLocked(ctx, "a@x.com"); locked {
			t.Fatalf("locked after %d failures, max is 3", i+1)
		}
	}
	s.RecordFailure(ctx, "a@x.com")
	locked, retry := s.IsLocked(ctx, "a@x.com")
	if !locked {
		t.Fatal("not locked after max failures")
	}
	if retry < 1 || retry > 900 {
		t.Errorf("retry-after out of range: %d", retry)
	}
}

func TestFailuresAreScopedByEmail(t *testing.T) {
	s := NewMemoryStore(2, 900)
	ctx := context.Background()

	s.RecordFailure(ctx, "a@x.com")
	s.RecordFailure(ctx, "a@x.com")
	if locked, _ := s.IsLocked(ctx, "b@x.com"); locked {
		t.Error("failures for one email locked another")
	}
	if locked, _ := s.IsLocked(ctx, "a@x.com"); !locked {
		t.Error("expected lock for the failing email")
	}
}

func TestSuccessClearsState(t *testing.T) {
	s := NewMemoryStore(2, 900)
	ctx := context.Background()

	s.RecordFailure(ctx, "a@x.com")
	s.RecordSuccess(ctx, "a@x.com")
	s.RecordFailure(ctx, "a@x.com")
	if locked, _ := s.IsLocked(ctx, "a@x.com"); locked {
		t.Error("success should reset the failure counter")
	}
}

func TestCooldownExpiryUnlocks(t *testing.T) {
	s := NewMemoryStore(1, 900)
	ctx := context.Background()

	s.RecordFailure(ctx, "a@x.com")
	if locked, _ := s.IsLocked(ctx, "a@x.com"); !locked {
		t.Fatal("expected lock")
	}
	// Force the lock into the past instead of sleeping.
	s.mu.Lock()
	s.data["a@x.com"].lockedUntil = time.Now().Add(-time.Second)
	s.mu.Unlock()
	if locked, _ := s.IsLocked(ctx, "a@x.com"); locked {
		t.Error("lock should expire with cooldown")
	}
}

func TestDisabledStoreNeverLocks(t *testing.T) {
	s := NewMemoryStore(0, 900)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		s.RecordFailure(ctx, "a@x.com")
	}
	if locked, _ := s.IsLocked(ctx, "a@x.com"); locked {
		t.Error("maxAttempts 0 must disable lockout")
	}
}

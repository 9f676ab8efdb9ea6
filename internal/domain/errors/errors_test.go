package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	if ErrUserExists == nil {
		t.Error("ErrUserExists should not be nil")
	}
	if ErrInvalidCredentials == nil {
		t.Error("ErrInvalidCredentials should not be nil")
	}
	if ErrInvalidToken == nil {
		t.Error("ErrInvalidToken should not be nil")
	}
}

func TestInvalidCredentialsMessageIsNeutral(t *testing.T) {
	// The message must not reveal whether the email exists.
	if got := ErrInvalidCredentials.Error(); got != "invalid email or password" {
		t.Errorf("unexpected message: %q", got)
	}
}

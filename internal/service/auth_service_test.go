package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xaramillo/crossfit/internal/domain"
)

const testJWTSecret = "test-secret"

func TestHashAndVerifyPassword(t *testing.T) {
	hash1, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	hash2, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	// Salted: same password, different bytes, both verify.
	if hash1 == hash2 {
		t.Error("two hashes of the same password are identical; salt missing")
	}
	if !VerifyPassword("hunter2!", hash1) || !VerifyPassword("hunter2!", hash2) {
		t.Error("correct password failed to verify")
	}
	if VerifyPassword("hunter3!", hash1) {
		t.Error("wrong password verified")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if VerifyPassword("whatever", hash) {
			t.Errorf("malformed hash %q verified", hash)
		}
	}
}

func TestRegisterAssignsUserRole(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, testJWTSecret, 0)

	user, err := svc.Register(context.Background(), "alice", "s3cret", "Alice A")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("registered role = %q, want %q", user.Role, domain.RoleUser)
	}
	if user.PasswordHash != "" {
		t.Error("returned user leaks password hash")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, testJWTSecret, 0)

	first, err := svc.Register(context.Background(), "alice", "s3cret", "")
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}

	if _, err := svc.Register(context.Background(), "alice", "other", ""); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("second Register: err = %v, want ErrDuplicateUsername", err)
	}

	// First user is untouched and still retrievable.
	got, err := users.GetByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("GetByID after duplicate attempt: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("surviving user = %q, want alice", got.Username)
	}
}

func TestLoginSuccessAndUniformFailure(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, testJWTSecret, 0)

	if _, err := svc.Register(context.Background(), "bob", "passw0rd", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "bob", "passw0rd")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("login returned empty token")
	}
	if user.Username != "bob" {
		t.Errorf("login user = %q, want bob", user.Username)
	}

	// Unknown username and wrong password fail with the same error.
	_, _, errUnknown := svc.Login(context.Background(), "nobody", "passw0rd")
	_, _, errWrong := svc.Login(context.Background(), "bob", "wrong")
	if !errors.Is(errUnknown, ErrAuthenticationFailed) || !errors.Is(errWrong, ErrAuthenticationFailed) {
		t.Errorf("failures differ: unknown=%v wrong=%v, want both ErrAuthenticationFailed", errUnknown, errWrong)
	}
}

func TestChangePassword(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, testJWTSecret, 0)

	user, err := svc.Register(context.Background(), "carol", "oldpass", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong old password: err = %v, want ErrAuthenticationFailed", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "oldpass", "newpass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "carol", "newpass"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "carol", "oldpass"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("login with old password: err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, testJWTSecret, 0)

	created, err := svc.EnsureDefaultAdmin(context.Background())
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if !created {
		t.Fatal("expected bootstrap to create the default admin")
	}

	admin, err := users.GetByUsername(context.Background(), DefaultAdminUsername)
	if err != nil {
		t.Fatalf("default admin not found: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("bootstrap role = %q, want admin", admin.Role)
	}
	if !VerifyPassword(DefaultAdminPassword, admin.PasswordHash) {
		t.Error("default admin password does not verify")
	}

	// Second call is a no-op once any user exists.
	created, err = svc.EnsureDefaultAdmin(context.Background())
	if err != nil {
		t.Fatalf("second EnsureDefaultAdmin: %v", err)
	}
	if created {
		t.Error("bootstrap ran again on a non-empty store")
	}
}

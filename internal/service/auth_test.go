package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/repository/sqlite"
	"github.com/msomdec/inkpost/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), service.NewTokenService(testJWTSecret, time.Hour), 4)
	return auth, db
}

func register(t *testing.T, auth *service.AuthService, email string) *service.Session {
	t.Helper()
	sess, err := auth.Register(context.Background(), service.RegisterInput{Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return sess
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	name := "  newbie  "
	sess, err := auth.Register(ctx, service.RegisterInput{Email: "new@example.com", Password: "password123", Username: &name})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if sess.User.ID == 0 || sess.User.UID == "" {
		t.Fatal("expected user ID and UID to be set")
	}
	if sess.User.Username == nil || *sess.User.Username != "newbie" {
		t.Fatalf("expected trimmed username, got %v", sess.User.Username)
	}
	if sess.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if sess.User.PasswordHash == "password123" {
		t.Fatal("password must not be stored in plaintext")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	register(t, auth, "dup@example.com")

	_, err := auth.Register(ctx, service.RegisterInput{Email: "dup@example.com", Password: "password456"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	var count int
	if err := db.SqlDB.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", "dup@example.com").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single account, got %d", count)
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	short, long := "ab", "abcdefghijklmnopqrstuvwxyz012345"
	tests := []struct {
		name  string
		input service.RegisterInput
		field string
	}{
		{"empty email", service.RegisterInput{Password: "password123"}, "email"},
		{"malformed email", service.RegisterInput{Email: "nope", Password: "password123"}, "email"},
		{"short password", service.RegisterInput{Email: "a@b.com", Password: "short"}, "password"},
		{"short username", service.RegisterInput{Email: "a@b.com", Password: "password123", Username: &short}, "username"},
		{"long username", service.RegisterInput{Email: "a@b.com", Password: "password123", Username: &long}, "username"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.input)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if verr.Issues[0].Path[0] != tc.field {
				t.Fatalf("expected issue on %s, got %+v", tc.field, verr.Issues)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	reg := register(t, auth, "login@example.com")

	sess, err := auth.Login(ctx, service.LoginInput{Email: "login@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if sess.User.UID != reg.User.UID {
		t.Fatalf("expected user %s, got %s", reg.User.UID, sess.User.UID)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, auth, "known@example.com")

	_, wrongPassword := auth.Login(ctx, service.LoginInput{Email: "known@example.com", Password: "wrongpassword"})
	_, unknownEmail := auth.Login(ctx, service.LoginInput{Email: "nobody@example.com", Password: "password123"})

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failures differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_ShortPasswordIsInvalidInput(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), service.LoginInput{Email: "a@b.com", Password: "short"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	sess := register(t, auth, "jwt@example.com")

	user, err := auth.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != sess.User.ID {
		t.Fatalf("expected user ID %d, got %d", sess.User.ID, user.ID)
	}

	if _, err := auth.Authenticate(ctx, "not-a-valid-jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	sess := register(t, auth, "gone@example.com")
	if _, err := db.SqlDB.Exec("DELETE FROM users WHERE id = ?", sess.User.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := auth.Authenticate(ctx, sess.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)
	sess := register(t, auth1, "secret@example.com")

	auth2 := service.NewAuthService(db.Users(), service.NewTokenService("a-completely-different-secret-value", time.Hour), 4)
	if _, err := auth2.Authenticate(context.Background(), sess.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, auth, "reset@example.com")

	if err := auth.ResetPassword(ctx, "reset@example.com", "brand-new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := auth.Login(ctx, service.LoginInput{Email: "reset@example.com", Password: "password123"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := auth.Login(ctx, service.LoginInput{Email: "reset@example.com", Password: "brand-new-password"}); err != nil {
		t.Fatalf("new password should work: %v", err)
	}

	if err := auth.ResetPassword(ctx, "nobody@example.com", "brand-new-password"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown email, got %v", err)
	}
	if err := auth.ResetPassword(ctx, "reset@example.com", "short"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAuthService_PasswordTooLong(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{"over 72 characters", strings.Repeat("a", 80)},
		{"72 characters but over 72 bytes", strings.Repeat("€", 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(ctx, service.RegisterInput{Email: "long@example.com", Password: tt.password})
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Register: expected validation error, got %v", err)
			}
			if verr.Issues[0].Path[0] != "password" {
				t.Fatalf("expected issue on password, got %v", verr.Issues[0].Path)
			}
		})
	}

	register(t, auth, "long@example.com")
	if err := auth.ResetPassword(ctx, "long@example.com", strings.Repeat("a", 80)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for long password, got %v", err)
	}
	if _, err := auth.Login(ctx, service.LoginInput{Email: "long@example.com", Password: strings.Repeat("a", 80)}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on login, got %v", err)
	}
}

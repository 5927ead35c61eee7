package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
}

// LoginInput is the payload for exchanging credentials for a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string
	User  *domain.User
}

// AuthService handles registration, login, and bearer token resolution.
type AuthService struct {
	users      domain.UserRepository
	tokens     *TokenService
	bcryptCost int
	// dummyHash is compared against when the email is unknown so that both
	// login failure paths spend the same bcrypt work.
	dummyHash []byte
}

// NewAuthService creates a new AuthService. tokens may be nil when the caller
// only manages passwords, as the reset-password command does.
func NewAuthService(users domain.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		// Only an out-of-range cost fails here; config rejects those at startup.
		panic(fmt.Sprintf("bcrypt dummy hash: %v", err))
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, dummyHash: dummy}
}

// Register creates a new account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	validate.Trim(&in.Email, in.Username)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.session(user)
}

// Login verifies credentials. Unknown email and wrong password both return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	validate.Trim(&in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

// Authenticate resolves a bearer token to its user. It returns
// domain.ErrInvalidToken for a bad or expired token and domain.ErrUnauthenticated
// when the token's subject no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	uid, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ResetPassword replaces the password of the account registered under email.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	in := struct {
		Password string `json:"password" validate:"required,min=8,max=72"`
	}{newPassword}
	if err := validate.Struct(in); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// max=72 counts characters; multibyte input can still exceed 72 bytes.
		return "", domain.NewValidationError("max", "Must contain at most 72 bytes", "password")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) session(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(user.UID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

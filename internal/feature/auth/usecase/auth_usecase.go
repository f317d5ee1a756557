// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"farmgrocery/internal/feature/auth/domain/entity"
)

const minPasswordLength = 8

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrUsernameTaken if the username is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a user matching the given login name.
	// It returns ErrUserNotFound if the user does not exist.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a user matching the given ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Username  string
	Password  string
}

// authUsecase implements registration and login.
type authUsecase struct {
	users UserRepository
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository) *authUsecase {
	return &authUsecase{users: users}
}

func (in *RegisterInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidRegistration)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidRegistration)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			ErrInvalidRegistration, minPasswordLength)
	}
	return nil
}

// Register creates a new user with a hashed password and returns it.
// A duplicate username surfaces as ErrUsernameTaken.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user by username and password.
// To mitigate timing attacks, bcrypt comparison runs even when the
// username does not exist.
func (u *authUsecase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.users.FindByUsername(ctx, username)

	// Dummy hash keeps the comparison cost constant for unknown usernames.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

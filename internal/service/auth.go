package service

import (
	"context"
	"strings"
	"unicode"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/repository"
)

// PasswordHasher turns plaintext passwords into digests and checks them.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(digest, plain string) bool
}

const (
	MinUsernameLength = 3
	MinPasswordLength = 7
)

// ValidateCredentials applies the registration rules: a username of at least
// three characters, and a password of at least seven with an upper case
// letter, a lower case letter and a digit.
func ValidateCredentials(username, password string) error {
	if len([]rune(strings.TrimSpace(username))) < MinUsernameLength {
		return Validationf("username must be at least %d characters", MinUsernameLength)
	}
	if len([]rune(password)) < MinPasswordLength {
		return Validationf("password must be at least %d characters", MinPasswordLength)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return Validation("password must contain an upper case letter, a lower case letter and a digit")
	}
	return nil
}

// Register creates a user. Usernames are unique regardless of case.
func Register(ctx context.Context, repo repository.Repository, hasher PasswordHasher, username, password string) (*models.User, error) {
	if err := ValidateCredentials(username, password); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)

	existing, err := repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameNotUnique
	}

	digest, err := hasher.Hash(password)
	if err != nil {
		return nil, &Error{Code: CodeInternal, Message: "failed to hash password", cause: err}
	}
	user, err := models.NewUser(username, digest)
	if err != nil {
		return nil, Validation(err.Error())
	}
	if err := repo.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username and password pair.
func Authenticate(ctx context.Context, repo repository.Repository, hasher PasswordHasher, username, password string) (*models.User, error) {
	user, err := repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if !hasher.Verify(user.PasswordHash, password) {
		return nil, ErrAuthentication
	}
	return user, nil
}

// GetUser looks a user up case-insensitively.
func GetUser(ctx context.Context, repo repository.Repository, username string) (*models.User, error) {
	user, err := repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

package users

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Directory describes registration and login behavior.
type Directory interface {
	Register(ctx context.Context, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type AuthResult struct {
	User  User
	Token string
}

// Codec is the slice of the credential codec the directory needs.
// It keeps the use case free of bcrypt/jwt specifics.
type Codec interface {
	HashPassword(plain string) (string, error)
	CheckPassword(plain, hash string) bool
	IssueToken(id uuid.UUID, email string) (string, error)
}

type directory struct {
	repo  Repository
	codec Codec
}

// NewDirectory returns the default implementation of Directory.
func NewDirectory(repo Repository, codec Codec) Directory {
	return &directory{repo: repo, codec: codec}
}

func (d *directory) Register(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrValidation
	}

	// Fail fast on a known address; the unique index catches races.
	if _, err := d.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	}

	passwordHash, err := d.codec.HashPassword(password)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := d.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (d *directory) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := d.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !d.codec.CheckPassword(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := d.codec.IssueToken(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (d *directory) FindByEmail(ctx context.Context, email string) (User, error) {
	return d.repo.GetByEmail(ctx, normalizeEmail(email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

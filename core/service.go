package core

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RepositoryAuthService implements AuthService on top of a UserRepository
// with bcrypt password hashing and JWT session tokens.
type RepositoryAuthService struct {
	users      UserRepository
	secret     []byte
	bcryptCost int
}

func NewRepositoryAuthService(users UserRepository, secret []byte, bcryptCost int) *RepositoryAuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RepositoryAuthService{users: users, secret: secret, bcryptCost: bcryptCost}
}

// Register creates an account with a salted bcrypt hash of password.
// Duplicate usernames fail with ErrDuplicateUsername and leave no row behind.
func (s *RepositoryAuthService) Register(username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	id, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return id, nil
}

// Login verifies credentials and mints a session token on success.
func (s *RepositoryAuthService) Login(username, password string) (string, User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", User{}, ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil || u == nil {
		return "", User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", User{}, ErrInvalidCredentials
	}

	user := User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
	token, err := IssueToken(s.secret, user)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

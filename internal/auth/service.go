package auth

import (
	"errors"

	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/repositories"
)

// Service registers and authenticates users, issuing tokens on success.
type Service struct {
	users  *repositories.UserRepository
	tokens *TokenIssuer
}

func NewService(users *repositories.UserRepository, tokens *TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Result is the successful outcome of Register or Login.
type Result struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

// Register creates a USER-role account and signs the caller in. Returns
// models.ErrConflict when the username or email is already taken; no row is
// created in that case.
func (s *Service) Register(username, email, password string) (*Result, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Insert(user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, User: user.View()}, nil
}

// Login verifies the credentials and issues a token. Unknown username and
// wrong password both return models.ErrInvalidCredentials so callers cannot
// probe for registered usernames.
func (s *Service) Login(username, password string) (*Result, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.Password) {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, User: user.View()}, nil
}

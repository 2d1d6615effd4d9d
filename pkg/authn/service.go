package authn

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/errs"
	"github.com/hearthhq/hearth/pkg/model"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// UserInfo is the public-safe projection of a user, safe to return to
// callers. The credential hash is never included.
type UserInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Service implements registration and password login.
type Service struct {
	users  store.UsersStore
	issuer *TokenIssuer
	log    *logrus.Logger
}

// NewService constructs an authentication Service.
func NewService(users store.UsersStore, issuer *TokenIssuer, log *logrus.Logger) *Service {
	return &Service{users: users, issuer: issuer, log: log}
}

// Register creates a new account. It fails with errs.ErrAlreadyExists when
// the email is already registered.
func (s *Service) Register(firstName, lastName, email, password string) error {
	existing, err := s.users.FindUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("user with email %s: %w", email, errs.ErrAlreadyExists)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.users.CreateUser(model.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hash,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log.WithField("email", email).Info("User registered")
	return nil
}

// Login verifies the credentials and mints a signed token. An unknown email
// and a wrong password both fail with errs.ErrInvalidCredentials; callers
// cannot tell the two apart.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.FindUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, errs.ErrInvalidCredentials
	}

	ok, err := VerifyPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User: UserInfo{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
	}, nil
}

// ChangePassword replaces a user's credential after verifying the current
// one.
func (s *Service) ChangePassword(userID int64, current, next string) error {
	user, err := s.users.FindUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", userID, errs.ErrNotFound)
	}

	ok, err := VerifyPassword(current, user.Password)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return errs.ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdateUserPassword(userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.log.WithField("user_id", userID).Info("Password changed")
	return nil
}

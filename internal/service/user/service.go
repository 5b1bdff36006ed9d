package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	"meditracker/internal/validator"
	"meditracker/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo     repository.UserRepository
	validate *validator.Validator
	log      *logger.Logger
}

func NewService(repo repository.UserRepository, validate *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, validate: validate, log: log}
}

// HashPassword is the stored credential digest. The format is fixed by the
// credentials file: deterministic hex sha256, compared as strings.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register appends a credential record. The credentials file is append-only,
// so callers must check Exists first; Register itself does not detect
// duplicates.
func (s *Service) Register(ctx context.Context, req *model.RegisterUserRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid user data: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: HashPassword(req.Password),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Organization: req.Organization,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.log.Info("user registered", "username", req.Username, "role", string(req.Role))
	return nil
}

// Get returns the first record matching the username or email, or nil.
func (s *Service) Get(ctx context.Context, usernameOrEmail string) (*model.User, error) {
	return s.repo.Get(ctx, usernameOrEmail)
}

func (s *Service) Exists(ctx context.Context, usernameOrEmail string) (bool, error) {
	user, err := s.repo.Get(ctx, usernameOrEmail)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Authenticate fetches the user and compares password digests. Patients log
// in by full name without a password; that bypass lives in the shell, not
// here.
func (s *Service) Authenticate(ctx context.Context, usernameOrEmail, password string) (*model.User, error) {
	user, err := s.repo.Get(ctx, usernameOrEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.PasswordHash != HashPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.User, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// Package file implements the repository interfaces over flat files: a
// colon-delimited credentials file and one JSON document per collection.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"meditracker/internal/model"
	"meditracker/internal/repository"
	apperrors "meditracker/pkg/errors"
)

const userDelimiter = ":"

type userRepository struct {
	path string
}

func NewUserRepository(path string) repository.UserRepository {
	return &userRepository{path: path}
}

// Save appends one line: user:hash:name:email:role:org:created-at. The
// delimiter is rejected in every field but the trailing timestamp, which the
// parser treats as the remainder of the line.
func (r *userRepository) Save(_ context.Context, user *model.User) error {
	fields := []string{
		user.Username,
		user.PasswordHash,
		user.Name,
		user.Email,
		string(user.Role),
		user.Organization,
	}
	for _, f := range fields {
		if strings.Contains(f, userDelimiter) {
			return apperrors.BadRequest(
				fmt.Sprintf("field %q contains reserved delimiter %q", f, userDelimiter), nil)
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperrors.Storage(fmt.Errorf("create data dir: %w", err))
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("open %s: %w", r.path, err))
	}
	defer f.Close()

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	line := strings.Join(append(fields, createdAt.Format(model.TimeLayout)), userDelimiter)
	if _, err := fmt.Fprintln(f, line); err != nil {
		return apperrors.Storage(fmt.Errorf("append %s: %w", r.path, err))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, usernameOrEmail string) (*model.User, error) {
	var found *model.User
	err := r.scan(func(u *model.User) bool {
		if u.Username == usernameOrEmail || (u.Email != "" && u.Email == usernameOrEmail) {
			found = u
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *userRepository) ListDoctors(_ context.Context) ([]*model.User, error) {
	doctors := []*model.User{}
	err := r.scan(func(u *model.User) bool {
		if u.Role == model.RoleDoctor {
			doctors = append(doctors, u)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// scan walks the file line by line, skipping malformed lines (fewer than six
// fields). The visit callback returns false to stop early.
func (r *userRepository) scan(visit func(*model.User) bool) error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return apperrors.Storage(fmt.Errorf("open %s: %w", r.path, err))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(strings.TrimSpace(scanner.Text()), userDelimiter, 7)
		if len(parts) < 6 {
			continue
		}
		user := &model.User{
			Username:     parts[0],
			PasswordHash: parts[1],
			Name:         parts[2],
			Email:        parts[3],
			Role:         model.Role(parts[4]),
			Organization: parts[5],
		}
		if len(parts) == 7 {
			// Created-at is informational; a bad timestamp stays zero.
			if ts, err := time.Parse(model.TimeLayout, parts[6]); err == nil {
				user.CreatedAt = ts
			}
		}
		if !visit(user) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return apperrors.Storage(fmt.Errorf("scan %s: %w", r.path, err))
	}
	return nil
}

package model

import (
	"time"
)

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User is one credential record in the append-only users file. Records are
// never updated or removed; uniqueness is the caller's responsibility via
// the user service's Exists check.
type User struct {
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Role         Role
	Organization string
	CreatedAt    time.Time
}

// RegisterUserRequest carries a signup. Doctor usernames are additionally
// restricted to alphanumerics by the console flow; patient usernames are
// full names and may contain spaces.
type RegisterUserRequest struct {
	Username     string `validate:"required,min=2"`
	Password     string `validate:"omitempty,min=8"`
	Name         string `validate:"required"`
	Email        string `validate:"omitempty,email"`
	Role         Role   `validate:"required,oneof=doctor patient"`
	Organization string
}

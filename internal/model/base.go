package model

import (
	"errors"
	"time"
)

// ── closed enumerations ──

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidBookType = errors.New("invalid book type")
)

// Role is one of admin, professor, student.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleProfessor, RoleStudent}

// ParseRole converts s to a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// UnmarshalText makes JSON decoding reject unknown roles.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AvatarColor is the background used for generated avatars.
func (r Role) AvatarColor() string {
	switch r {
	case RoleAdmin:
		return "ef4444"
	case RoleProfessor:
		return "3b82f6"
	default:
		return "22c55e"
	}
}

// BookType is one of student, professor.
type BookType string

const (
	BookTypeStudent   BookType = "student"
	BookTypeProfessor BookType = "professor"
)

// ParseBookType converts s to a BookType, rejecting unknown values.
func ParseBookType(s string) (BookType, error) {
	t := BookType(s)
	if !t.Valid() {
		return "", ErrInvalidBookType
	}
	return t, nil
}

func (t BookType) Valid() bool {
	return t == BookTypeStudent || t == BookTypeProfessor
}

func (t BookType) String() string { return string(t) }

func (t *BookType) UnmarshalText(b []byte) error {
	parsed, err := ParseBookType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Timestamps audit columns shared by mutable tables.
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

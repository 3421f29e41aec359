package models

import (
	"regexp"
	"time"

	"devconnector/internal/models/api_error"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is the credential record. The password hash never reaches clients.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	AvatarURL    string    `db:"avatar_url" json:"avatar"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports every violated field at once, before any side effect.
func (r *RegisterRequest) Validate() api_error.ValidationErrors {
	var errs api_error.ValidationErrors

	if r.Name == "" {
		errs = append(errs, api_error.FieldError{Field: "name", Msg: "name must not be empty"})
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, api_error.FieldError{Field: "email", Msg: "please include a valid email"})
	}
	if len(r.Password) < 5 {
		errs = append(errs, api_error.FieldError{Field: "password", Msg: "please enter a password with five or more characters"})
	}

	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() api_error.ValidationErrors {
	var errs api_error.ValidationErrors

	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, api_error.FieldError{Field: "email", Msg: "please include a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, api_error.FieldError{Field: "password", Msg: "password is required"})
	}

	return errs
}

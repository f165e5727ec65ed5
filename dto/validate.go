package dto

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	NameMinLen     = 20
	NameMaxLen     = 60
	AddressMaxLen  = 400
	PasswordMinLen = 8
	PasswordMaxLen = 16
	RatingMin      = 1
	RatingMax      = 5
)

var validate = validator.New()

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

type FieldErrors []FieldError

func (fe *FieldErrors) add(field, format string, args ...any) {
	*fe = append(*fe, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func checkName(fe *FieldErrors, name string) {
	n := utf8.RuneCountInString(name)
	if n < NameMinLen || n > NameMaxLen {
		fe.add("name", "must be between %d and %d characters", NameMinLen, NameMaxLen)
	}
}

func checkEmail(fe *FieldErrors, field, email string) {
	if err := validate.Var(email, "required,email"); err != nil {
		fe.add(field, "must be a valid email address")
	}
}

func checkAddress(fe *FieldErrors, address string) {
	if utf8.RuneCountInString(address) > AddressMaxLen {
		fe.add("address", "must be at most %d characters", AddressMaxLen)
	}
}

func checkPassword(fe *FieldErrors, field, password string) {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLen || n > PasswordMaxLen {
		fe.add(field, "must be between %d and %d characters", PasswordMinLen, PasswordMaxLen)
		return
	}
	var upper, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		default:
			special = true
		}
	}
	if !upper {
		fe.add(field, "must contain at least one uppercase letter")
	}
	if !special {
		fe.add(field, "must contain at least one special character")
	}
}

package domain

import (
	"strings"
	"time"
)

// User field length limits. Password bounds come from bcrypt: inputs longer
// than 72 bytes are silently truncated by the algorithm, so they are rejected
// up front.
const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// User represents a registered account. The plaintext Password field is only
// populated transiently during registration; HashedPassword is what gets
// persisted. Neither is ever serialized.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, held only until hashing
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given name, email and plaintext
// password. The email is normalized to lower case so uniqueness checks are
// case-insensitive. The ID is assigned by the store on creation.
// Returns a ValidationError if any field is invalid.
func NewUser(name, email, password string) (*User, error) {
	user := &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password, // Must be hashed before storage
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail lowercases and trims an email address. All email
// comparisons and storage go through this so that "Jane@X.com" and
// "jane@x.com" are the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns a ValidationError describing the first failing field.
func (u *User) Validate() error {
	if len(u.Name) < MinNameLength || len(u.Name) > MaxNameLength {
		return NewValidationError("name", "must be between 2 and 100 characters", ErrValidation)
	}

	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrInvalidEmail)
	}
	if !validEmailFormat(u.Email) {
		return NewValidationError("email", "is not a valid email address", ErrInvalidEmail)
	}

	// During creation a plaintext password must be present; for users loaded
	// from the store only the hash is.
	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password", "must be at least 6 characters", ErrInvalidPassword)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "must be at most 72 characters", ErrInvalidPassword)
		}
	} else if u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrInvalidPassword)
	}

	return nil
}

// validEmailFormat performs basic structural validation of an email address:
// exactly one @ with a non-empty local part and a dotted domain. Anything
// stricter is the business of the mail system, not this API.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.IndexByte(email[at+1:], '@') != -1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

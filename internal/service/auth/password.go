package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor used for password hashing.
const BcryptCost = 10

// PasswordHasher defines the interface for turning a plaintext password into
// its stored form. Hashing is an explicit step performed by the credential
// store at creation time, never an implicit side effect of field assignment.
type PasswordHasher interface {
	// Hash derives an irreversible salted hash from the plaintext password.
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, or an error on failure (e.g.,
	// mismatch). The comparison runs in constant time relative to the
	// stored hash.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates a new BcryptVerifier with the standard cost.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: BcryptCost}
}

// Hash implements the PasswordHasher interface using bcrypt. The salt is
// generated and embedded in the returned hash by the algorithm.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

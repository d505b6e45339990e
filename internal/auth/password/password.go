// Package password implements credential hashing and the registration-time
// strength policy.
package password

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the minimum accepted password length at registration.
const MinLength = 8

// Hasher wraps bcrypt with a configurable work factor. bcrypt salts every
// hash, so hashing the same password twice yields different strings while
// Verify still succeeds for both.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash returns the bcrypt hash of password. It fails only on internal bcrypt
// errors, never on valid input.
func (h Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash. Any mismatch,
// including a malformed stored hash, yields false rather than an error.
func (h Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateStrength applies the registration password policy: at least
// MinLength characters with one uppercase, one lowercase, and one digit.
// It returns a validity flag plus a human-readable reason.
func ValidateStrength(password string) (bool, string) {
	if len(password) < MinLength {
		return false, fmt.Sprintf("password must be at least %d characters", MinLength)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return false, "password must contain an uppercase letter"
	case !hasLower:
		return false, "password must contain a lowercase letter"
	case !hasDigit:
		return false, "password must contain a digit"
	}
	return true, ""
}

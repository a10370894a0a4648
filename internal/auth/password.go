package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// IsBcryptHash reports whether secret looks like a bcrypt digest.
func IsBcryptHash(secret string) bool {
	return strings.HasPrefix(secret, "$2a$") ||
		strings.HasPrefix(secret, "$2b$") ||
		strings.HasPrefix(secret, "$2y$")
}

// AllowList holds the administrator credentials permitted to sign in.
type AllowList struct {
	users map[string]string
}

// NewAllowList copies users so later mutation of the map has no effect.
func NewAllowList(users map[string]string) *AllowList {
	copied := make(map[string]string, len(users))
	for name, secret := range users {
		copied[name] = secret
	}
	return &AllowList{users: copied}
}

// Len returns the number of configured administrators.
func (a *AllowList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.users)
}

// Verify reports whether the pair matches an entry exactly.
func (a *AllowList) Verify(username, password string) bool {
	if a == nil || username == "" {
		return false
	}
	secret, ok := a.users[username]
	if !ok {
		return false
	}
	if IsBcryptHash(secret) {
		return ComparePassword(secret, password) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}

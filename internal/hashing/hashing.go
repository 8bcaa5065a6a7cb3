// Package hashing wraps bcrypt for password storage.
package hashing

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const cost = 10

// IsHashed reports whether s already carries the bcrypt format prefix.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, "$2")
}

// Hash returns the bcrypt hash of password. A value that is already in hashed
// form is returned unchanged so a hash can never be double-hashed.
func Hash(password string) (string, error) {
	if IsHashed(password) {
		return password, nil
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether password matches hash. A malformed stored hash
// simply fails verification.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password digests.
const BcryptCost = 12

// HashPassword derives a salted digest from a raw password.
// The raw password is never stored.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a raw password against a stored digest.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

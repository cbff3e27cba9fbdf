package service

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest from a plaintext password.
// Every call produces a different digest for the same input.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// bcrypt's comparison is constant time.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

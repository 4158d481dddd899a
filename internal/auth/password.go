package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash. The salt is random per call,
// so two hashes of the same password differ.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A
// malformed hash is a mismatch, never an error surfaced to login.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

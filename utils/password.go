package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt cost stays at the library default; signup and login pay it equally.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt hash stored on the user record. The
// plaintext is never persisted or logged.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

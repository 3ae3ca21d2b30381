package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way digest of the password.
// DefaultCost (10) matches the cost factor used at account creation
// since the first deployment; raising it only affects new hashes.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the password matches the stored digest.
// A malformed digest is treated as a non-match, never an error.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

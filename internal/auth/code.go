package auth

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// CodeValidity is how long an email verification code stays usable.
const CodeValidity = 15 * time.Minute

// GenerateVerificationCode returns a uniformly random 6-digit code
// in [100000, 999999].
func GenerateVerificationCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

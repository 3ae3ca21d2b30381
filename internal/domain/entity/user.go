package entity

// User is an account holder. Accounts start unverified and cannot
// authenticate until the email verification code is confirmed.
type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"` // stored lower-cased
	PasswordHash string `gorm:"not null"`
	IsVerified   bool   `gorm:"not null;default:false"`

	// Pending verification state; both nil once the account is verified.
	VerificationCode    *string
	VerificationExpires *int64

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}

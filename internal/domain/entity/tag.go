package entity

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#6366f1"

// Tag is a per-user label. Names are unique per user, case-insensitively.
type Tag struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"` // References: users(id)
	Name      string `gorm:"not null"`
	Color     string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`
}

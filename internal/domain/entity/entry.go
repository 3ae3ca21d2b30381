package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Entry struct {
	ID         string     `gorm:"primaryKey"`
	UserID     string     `gorm:"index;not null"` // References: users(id)
	Title      string     `gorm:"not null"`
	Content    string     `gorm:"not null"`
	Tags       StringList `gorm:"type:text;not null"` // References: tags(id)
	IsFavorite bool       `gorm:"not null;default:false"`
	CreatedAt  int64      `gorm:"not null"`
	UpdatedAt  int64      `gorm:"not null;autoUpdateTime:false"`
}

// StringList stores a list of ids as a JSON text column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (s *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(s))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(s))
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Contains reports whether the given tag id is referenced by the entry.
func (s StringList) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed.
func (s StringList) Without(id string) StringList {
	out := make(StringList, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

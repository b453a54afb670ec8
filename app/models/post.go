package models

import (
	"time"

	"gorm.io/gorm"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate is the gorm hook that stamps CreatedAt on insert
func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}

// Author returns the username of the loaded author, or UnknownAuthor when the row is missing.
func (p *Post) Author() string {
	if p.User == nil || p.User.Username == "" {
		return UnknownAuthor
	}
	return p.User.Username
}

// IsAuthoredBy reports whether userID wrote the post.
func (p *Post) IsAuthoredBy(userID uint) bool {
	return userID != 0 && p.UserID == userID
}

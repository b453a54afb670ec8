package models

import "time"

// UnknownAuthor is shown in place of a username whose user row no longer exists.
const UnknownAuthor = "Unknown user"

// User is a registered account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" validate:"gte=0"`
	Username  string    `gorm:"size:80;uniqueIndex;not null" validate:"required,max=80"`
	Password  string    `gorm:"size:200;not null" json:"-" validate:"required,max=200"`
	CreatedAt time.Time `validate:"-"`
}

// Category is one of the fixed post categories seeded at startup.
type Category struct {
	ID   uint   `gorm:"primaryKey" validate:"gte=0"`
	Name string `gorm:"size:100;uniqueIndex;not null" validate:"required,max=100"`
}

// Post represents a blog post with comments.
type Post struct {
	ID         uint      `gorm:"primaryKey" validate:"gte=0"`
	Title      string    `gorm:"size:200;not null" validate:"required,max=200"`
	Content    string    `gorm:"type:text;not null" validate:"required"`
	UserID     uint      `gorm:"index;not null" validate:"required"`
	CategoryID uint      `gorm:"index;not null" validate:"required"`
	CreatedAt  time.Time `validate:"-"`
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" validate:"-"`
	Comments   []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" validate:"gte=0"`
	Content   string    `gorm:"type:text;not null" validate:"required"`
	PostID    uint      `gorm:"index;not null" validate:"required"`
	UserID    uint      `gorm:"index;not null" validate:"required"`
	CreatedAt time.Time `validate:"-"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" validate:"-"`
}

// PostSummary is a post row enriched for listings.
type PostSummary struct {
	ID             uint
	Title          string
	Content        string
	UserID         uint
	CategoryID     uint
	CreatedAt      time.Time
	Author         string
	CommentsAmount int64
}

// CommentView is a comment row joined with its author's username.
type CommentView struct {
	ID        uint
	Content   string
	PostID    uint
	UserID    uint
	CreatedAt time.Time
	Author    string
}

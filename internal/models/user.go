// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Default profile images used when a user does not supply their own.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a user account in Warbler.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Bio            string         `json:"bio"`
	Location       string         `json:"location"`
	ImageURL       string         `gorm:"default:'/static/images/default-pic.png'" json:"image_url"`
	HeaderImageURL string         `gorm:"default:'/static/images/warbler-hero.jpg'" json:"header_image_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Messages       []Message      `gorm:"foreignKey:UserID" json:"messages,omitempty"`

	// FollowersCount and FollowingCount are not persisted; computed at query time
	FollowersCount int64 `gorm:"-" json:"followers_count"`
	FollowingCount int64 `gorm:"-" json:"following_count"`
	// Following reports whether the requesting viewer follows this user.
	Following bool `gorm:"-" json:"following"`
}

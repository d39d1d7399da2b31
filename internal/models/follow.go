package models

import "time"

// Follow represents a directed follow edge between two users: the follower's
// home timeline includes the followee's messages. The (FollowerID, FolloweeID)
// pair is unique, and direction matters: (A,B) and (B,A) are distinct edges.
//
// Edges are hard-deleted rather than soft-deleted so that an unfollow/refollow
// cycle never collides with the composite unique index.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee;index:idx_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

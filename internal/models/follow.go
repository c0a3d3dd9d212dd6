package models

import "time"

// The follow edge set is stored twice, as two inverse indexes, mirroring the
// two relations a profile exposes: who follows a user and whom a user follows.
// Both tables must agree at every commit; every edge mutation writes both
// inside one transaction.

// FollowerEntry is one row of the followee->follower index:
// "FollowerID follows UserID".
type FollowerEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_follower_edge"`
	FollowerID uint      `json:"follower_id" gorm:"uniqueIndex:idx_follower_edge"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowingEntry is one row of the follower->followee index:
// "UserID follows FollowingID".
type FollowingEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_following_edge"`
	FollowingID uint      `json:"following_id" gorm:"uniqueIndex:idx_following_edge"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateFollowRequest defines the request body for the follow toggle
type UpdateFollowRequest struct {
	Follow bool `json:"follow"`
}

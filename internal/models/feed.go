package models

import "time"

// FeedEntry is one photo's appearance in one follower's home feed. Entries are
// materialized at publish time for the follower set observed then, are never
// created retroactively, and are removed only when the photo is deleted.
type FeedEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index:idx_feed_user_time"`
	PhotoID   uint      `json:"photo_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_feed_user_time"`
}

package models

import "time"

// Like is one element of a photo's like set. Membership is toggled, never
// updated; the unique index makes repeated likes collapse into one row.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PhotoID   uint      `json:"photo_id" gorm:"index;uniqueIndex:idx_photo_user_like"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_photo_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateLikeRequest defines the request body for the like toggle
type UpdateLikeRequest struct {
	Like bool `json:"like"`
}

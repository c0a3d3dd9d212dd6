package models

import "time"

// Comment belongs to exactly one photo. Text is immutable; there is no edit
// operation, only create and delete.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PhotoID   uint      `json:"photo_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Text      string    `json:"text" gorm:"size:400"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=400"`
}

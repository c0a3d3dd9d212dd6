package models

import "time"

// Photo is the primary-store record of an uploaded photo. The image bytes live
// in blob storage; URL is the stable reference returned by it.
type Photo struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	User        User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	URL         string    `json:"url"`
	Ratio       float64   `json:"ratio" gorm:"default:-1"`
	Description string    `json:"description" gorm:"size:400"`
	Location    string    `json:"location" gorm:"size:200"`
	Tags        []Tag     `json:"tags" gorm:"many2many:photo_tags"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// Tag is a deduplicated tag entity keyed by its text. Photos reference tags
// through the photo_tags join table.
type Tag struct {
	ID  uint   `json:"id" gorm:"primaryKey"`
	Tag string `json:"tag" gorm:"uniqueIndex;size:200"`
}

// HotTag is a tag together with how many photos carry it.
type HotTag struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

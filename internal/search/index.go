// Package search maintains the denormalized, eventually-consistent projections
// of photos and users held by the external full-text search service. Documents
// here are never authoritative; the primary store is.
package search

import (
	"context"
	"time"
)

// PhotoDocument is the per-photo search projection: owner display fields,
// description, location, tag strings and the flat comment text list.
type PhotoDocument struct {
	PhotoID       uint      `bson:"_id" json:"photo_id"`
	URL           string    `bson:"url" json:"url"`
	OwnerID       uint      `bson:"owner_id" json:"owner_id"`
	OwnerUsername string    `bson:"owner_username" json:"owner_username"`
	OwnerName     string    `bson:"owner_name" json:"owner_name"`
	Description   string    `bson:"description" json:"description"`
	Location      string    `bson:"location" json:"location"`
	Tags          []string  `bson:"tags" json:"tags"`
	Comments      []string  `bson:"comments" json:"comments"`
	PostedAt      time.Time `bson:"posted_at" json:"posted_at"`
}

// UserDocument is the per-user search projection.
type UserDocument struct {
	UserID      uint   `bson:"_id" json:"user_id"`
	Username    string `bson:"username" json:"username"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	AvatarURL   string `bson:"avatar_url" json:"avatar_url"`
}

// Index is the search service boundary. All mutating calls are best-effort:
// the coordinator invokes them only after the primary-store transaction has
// committed, logs failures and never retries or rolls back.
//
// SavePhoto and SaveUser are whole-document upserts. AddPhotoComment is an
// incremental field delta appending one comment; SetPhotoComments overwrites
// the comment-list field wholesale with a value recomputed from the primary
// store. Comment creation uses the delta path and comment deletion the
// recompute path; that asymmetry is part of the observed contract.
type Index interface {
	SavePhoto(ctx context.Context, doc *PhotoDocument) error
	AddPhotoComment(ctx context.Context, photoID uint, comment string) error
	SetPhotoComments(ctx context.Context, photoID uint, comments []string) error
	DeletePhoto(ctx context.Context, photoID uint) error
	SaveUser(ctx context.Context, doc *UserDocument) error
	SearchPhotos(ctx context.Context, query string, limit int) ([]PhotoDocument, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]UserDocument, error)
}

package services

import (
	"context"
	"errors"

	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/repositories"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CommentService manages a photo's ordered comment list.
type CommentService struct {
	db       *gorm.DB
	photos   repositories.PhotoRepository
	comments repositories.CommentRepository
	index    search.Index
	log      *logrus.Logger
}

// Create appends a comment to the photo. After the commit the mirror gets an
// incremental field delta pushing just the new text, no document refetch.
func (s *CommentService) Create(ctx context.Context, actorID, photoID uint, text string) (*models.Comment, error) {
	photo, err := s.photos.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPhotoNotFound
		}
		return nil, err
	}

	comment := &models.Comment{PhotoID: photo.ID, UserID: actorID, Text: text}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.comments.WithTx(tx).CreateComment(comment)
	})
	if err != nil {
		return nil, err
	}

	if err := s.index.AddPhotoComment(ctx, photo.ID, comment.Text); err != nil {
		logSyncFailure(s.log, err, "add comment", logrus.Fields{"photo_id": photo.ID, "comment_id": comment.ID})
	}
	return comment, nil
}

// Delete removes a comment permanently. Only the author may delete it; anyone
// else sees the same ALREADY_DELETED error as for a missing comment. After the
// commit the mirror's comment list is recomputed from the primary store and
// overwritten wholesale. Note the asymmetry with Create's incremental delta;
// both paths are kept as observed.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uint) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAlreadyDeleted
		}
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, errs.ErrAlreadyDeleted
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.comments.WithTx(tx).DeleteComment(comment)
	})
	if err != nil {
		return nil, err
	}

	texts, err := s.comments.TextsByPhoto(comment.PhotoID)
	if err != nil {
		logSyncFailure(s.log, err, "recompute comments", logrus.Fields{"photo_id": comment.PhotoID})
		return comment, nil
	}
	if err := s.index.SetPhotoComments(ctx, comment.PhotoID, texts); err != nil {
		logSyncFailure(s.log, err, "set comments", logrus.Fields{"photo_id": comment.PhotoID})
	}
	return comment, nil
}

// ListByPhoto returns the photo's comments oldest first.
func (s *CommentService) ListByPhoto(ctx context.Context, photoID uint) ([]models.Comment, error) {
	if _, err := s.photos.GetPhotoByID(photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPhotoNotFound
		}
		return nil, err
	}
	return s.comments.ListCommentsByPhoto(photoID)
}

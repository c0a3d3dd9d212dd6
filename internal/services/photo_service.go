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

// PhotoService manages photo publishing, deletion, likes and feed reads. It is
// the fan-out engine: publishing materializes one feed entry per follower
// observed at publish time, inside the same transaction that creates the photo.
type PhotoService struct {
	db       *gorm.DB
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	photos   repositories.PhotoRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	feed     repositories.FeedRepository
	index    search.Index
	log      *logrus.Logger
}

// PublishParams carries the photo fields persisted at publish time. URL is the
// blob-storage reference of the already-uploaded image.
type PublishParams struct {
	URL         string
	Ratio       float64
	Description string
	Location    string
	Tags        []string
}

// PhotoView is a photo enriched with its author and aggregate view: like and
// comment counts computed from current set membership, plus the viewer's own
// like status.
type PhotoView struct {
	models.Photo
	Author       models.UserCompact `json:"author"`
	LikeCount    int64              `json:"like_count"`
	CommentCount int64              `json:"comment_count"`
	IsLiked      bool               `json:"is_liked"`
}

// Publish persists the photo and fans it out. One transaction covers the photo
// row, its tag associations and the feed entries; a crash anywhere inside
// leaves no partially-visible photo. The follower set is read from the same
// transaction, so it is exactly the set at publish time: users who follow
// later never receive this photo. The search-document upsert happens after the
// commit and is best-effort.
func (s *PhotoService) Publish(ctx context.Context, ownerID uint, p PublishParams) (*models.Photo, error) {
	owner, err := s.users.GetUserByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotAuthenticated
		}
		return nil, err
	}

	photo := &models.Photo{
		UserID:      owner.ID,
		URL:         p.URL,
		Ratio:       p.Ratio,
		Description: p.Description,
		Location:    p.Location,
	}
	tags := dedupeTags(p.Tags)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		photoRepo := s.photos.WithTx(tx)
		if err := photoRepo.CreatePhoto(photo); err != nil {
			return err
		}
		for _, name := range tags {
			if err := photoRepo.AttachTag(photo, name); err != nil {
				return err
			}
		}

		followerIDs, err := s.follows.WithTx(tx).FollowerIDs(owner.ID)
		if err != nil {
			return err
		}
		entries := make([]models.FeedEntry, 0, len(followerIDs))
		for _, followerID := range followerIDs {
			if followerID == owner.ID {
				continue
			}
			entries = append(entries, models.FeedEntry{UserID: followerID, PhotoID: photo.ID})
		}
		return s.feed.WithTx(tx).CreateEntries(entries)
	})
	if err != nil {
		return nil, err
	}

	doc := &search.PhotoDocument{
		PhotoID:       photo.ID,
		URL:           photo.URL,
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		OwnerName:     owner.Name(),
		Description:   photo.Description,
		Location:      photo.Location,
		Tags:          tags,
		Comments:      []string{},
		PostedAt:      photo.CreatedAt,
	}
	if err := s.index.SavePhoto(ctx, doc); err != nil {
		logSyncFailure(s.log, err, "save photo", logrus.Fields{"photo_id": photo.ID})
	}
	return photo, nil
}

// Delete tombstones a photo. Only the owner may delete it; anyone else sees
// the same ALREADY_DELETED error as for a missing photo. Comments, likes, tag
// associations and feed entries are removed in the same transaction as the
// photo row; the search document is removed after the commit, best-effort.
func (s *PhotoService) Delete(ctx context.Context, actorID, photoID uint) (*models.Photo, error) {
	photo, err := s.photos.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAlreadyDeleted
		}
		return nil, err
	}
	if photo.UserID != actorID {
		return nil, errs.ErrAlreadyDeleted
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).DeleteByPhoto(photo.ID); err != nil {
			return err
		}
		if err := s.likes.WithTx(tx).DeleteByPhoto(photo.ID); err != nil {
			return err
		}
		if err := s.feed.WithTx(tx).DeleteByPhoto(photo.ID); err != nil {
			return err
		}
		photoRepo := s.photos.WithTx(tx)
		if err := photoRepo.ClearTags(photo); err != nil {
			return err
		}
		return photoRepo.DeletePhoto(photo)
	})
	if err != nil {
		return nil, err
	}

	if err := s.index.DeletePhoto(ctx, photo.ID); err != nil {
		logSyncFailure(s.log, err, "delete photo", logrus.Fields{"photo_id": photo.ID})
	}
	return photo, nil
}

// SetLike toggles the actor's membership in the photo's like set. Both
// directions are idempotent; the mirror is not touched, likes are not indexed.
func (s *PhotoService) SetLike(ctx context.Context, actorID, photoID uint, like bool) (*models.Photo, error) {
	photo, err := s.photos.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPhotoNotFound
		}
		return nil, err
	}

	if like {
		err = s.likes.AddLike(photo.ID, actorID)
	} else {
		err = s.likes.RemoveLike(photo.ID, actorID)
	}
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// View loads a photo with its aggregate view for the given viewer.
func (s *PhotoService) View(ctx context.Context, photoID, viewerID uint) (*PhotoView, error) {
	photo, err := s.photos.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPhotoNotFound
		}
		return nil, err
	}
	return s.buildView(photo, viewerID)
}

// Feed returns a page of the viewer's materialized home feed, newest first.
func (s *PhotoService) Feed(ctx context.Context, viewerID uint, offset, limit int) ([]PhotoView, int64, error) {
	entries, err := s.feed.ListForUser(viewerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.feed.CountForUser(viewerID)
	if err != nil {
		return nil, 0, err
	}

	photoIDs := make([]uint, len(entries))
	for i, e := range entries {
		photoIDs[i] = e.PhotoID
	}
	photos, err := s.photos.ListPhotosByIDs(photoIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]models.Photo, len(photos))
	for _, p := range photos {
		byID[p.ID] = p
	}

	views := make([]PhotoView, 0, len(entries))
	for _, e := range entries {
		photo, ok := byID[e.PhotoID]
		if !ok {
			continue
		}
		view, err := s.buildView(&photo, viewerID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

// ListByUser returns a user's photos newest first, with aggregates for the
// viewer.
func (s *PhotoService) ListByUser(ctx context.Context, userID, viewerID uint, offset, limit int) ([]PhotoView, error) {
	photos, err := s.photos.ListPhotosByUser(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	views := make([]PhotoView, 0, len(photos))
	for i := range photos {
		view, err := s.buildView(&photos[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Explore returns the newest photos across all users, with aggregates for the
// viewer.
func (s *PhotoService) Explore(ctx context.Context, viewerID uint, offset, limit int) ([]PhotoView, error) {
	photos, err := s.photos.ListRecentPhotos(offset, limit)
	if err != nil {
		return nil, err
	}
	views := make([]PhotoView, 0, len(photos))
	for i := range photos {
		view, err := s.buildView(&photos[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// TopTags returns the most used tags, optionally filtered by prefix.
func (s *PhotoService) TopTags(ctx context.Context, prefix string, topN int) ([]models.HotTag, error) {
	return s.photos.TopTags(prefix, topN)
}

func (s *PhotoService) buildView(photo *models.Photo, viewerID uint) (*PhotoView, error) {
	likeCount, err := s.likes.CountByPhoto(photo.ID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.comments.CountByPhoto(photo.ID)
	if err != nil {
		return nil, err
	}
	isLiked := false
	if viewerID != 0 {
		if isLiked, err = s.likes.HasUserLikedPhoto(photo.ID, viewerID); err != nil {
			return nil, err
		}
	}
	owner, err := s.users.GetUserByID(photo.UserID)
	if err != nil {
		return nil, err
	}
	return &PhotoView{
		Photo:        *photo,
		Author:       owner.ToCompact(),
		LikeCount:    likeCount,
		CommentCount: commentCount,
		IsLiked:      isLiked,
	}, nil
}

// dedupeTags drops repeated tag names, keeping first-seen order.
func dedupeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

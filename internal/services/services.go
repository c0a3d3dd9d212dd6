// Package services is the mutation layer: each operation wraps its
// primary-store writes in one transaction and defers search-mirror
// synchronization until after a successful commit. Mirror failures are logged
// and swallowed; the primary store is never rolled back for them.
package services

import (
	"github.com/photoshare-app/backend/internal/repositories"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services is a container holding all mutation services. They share one
// database handle and one search index client.
type Services struct {
	Users    *UserService
	Follows  *FollowService
	Photos   *PhotoService
	Comments *CommentService
}

// NewServices wires the repositories and returns the service container.
func NewServices(db *gorm.DB, index search.Index, log *logrus.Logger) *Services {
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	photoRepo := repositories.NewPostgresPhotoRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	feedRepo := repositories.NewPostgresFeedRepository(db)

	return &Services{
		Users: &UserService{
			db: db, users: userRepo, index: index, log: log,
		},
		Follows: &FollowService{
			db: db, users: userRepo, follows: followRepo, log: log,
		},
		Photos: &PhotoService{
			db: db, users: userRepo, follows: followRepo, photos: photoRepo,
			comments: commentRepo, likes: likeRepo, feed: feedRepo,
			index: index, log: log,
		},
		Comments: &CommentService{
			db: db, photos: photoRepo, comments: commentRepo, index: index, log: log,
		},
	}
}

// logSyncFailure records a failed search-mirror write. By contract the failure
// is not surfaced to the caller and not retried.
func logSyncFailure(log *logrus.Logger, err error, op string, fields logrus.Fields) {
	log.WithError(err).WithFields(fields).Warnf("search sync failed: %s", op)
}

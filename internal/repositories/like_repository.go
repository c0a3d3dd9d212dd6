package repositories

import (
	"github.com/photoshare-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like-set operations. Likes are set
// membership with toggle semantics; both directions are idempotent.
type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository
	AddLike(photoID, userID uint) error
	RemoveLike(photoID, userID uint) error
	HasUserLikedPhoto(photoID, userID uint) (bool, error)
	CountByPhoto(photoID uint) (int64, error)
	DeleteByPhoto(photoID uint) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &PostgresLikeRepository{db: tx}
}

// AddLike adds userID to the photo's like set. Liking an already-liked photo
// is a no-op thanks to ON CONFLICT DO NOTHING on the (photo, user) pair.
func (r *PostgresLikeRepository) AddLike(photoID, userID uint) error {
	like := models.Like{PhotoID: photoID, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// RemoveLike removes userID from the photo's like set. Unliking a photo that
// was never liked is a no-op.
func (r *PostgresLikeRepository) RemoveLike(photoID, userID uint) error {
	return r.db.Where("photo_id = ? AND user_id = ?", photoID, userID).Delete(&models.Like{}).Error
}

func (r *PostgresLikeRepository) HasUserLikedPhoto(photoID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("photo_id = ? AND user_id = ?", photoID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) CountByPhoto(photoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("photo_id = ?", photoID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) DeleteByPhoto(photoID uint) error {
	return r.db.Where("photo_id = ?", photoID).Delete(&models.Like{}).Error
}

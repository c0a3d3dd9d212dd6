package repositories

import (
	"github.com/photoshare-app/backend/internal/models"
	"gorm.io/gorm"
)

// FeedRepository defines the interface for the materialized home feed inbox.
// Entries are written once by the fan-out engine and only ever removed by the
// photo-delete cascade.
type FeedRepository interface {
	WithTx(tx *gorm.DB) FeedRepository
	CreateEntries(entries []models.FeedEntry) error
	ListForUser(userID uint, offset, limit int) ([]models.FeedEntry, error)
	CountForUser(userID uint) (int64, error)
	DeleteByPhoto(photoID uint) error
}

// PostgresFeedRepository implements FeedRepository for PostgreSQL
type PostgresFeedRepository struct {
	db *gorm.DB
}

// NewPostgresFeedRepository creates a new PostgresFeedRepository
func NewPostgresFeedRepository(db *gorm.DB) *PostgresFeedRepository {
	return &PostgresFeedRepository{db: db}
}

func (r *PostgresFeedRepository) WithTx(tx *gorm.DB) FeedRepository {
	return &PostgresFeedRepository{db: tx}
}

// CreateEntries inserts the fan-out batch in a single write.
func (r *PostgresFeedRepository) CreateEntries(entries []models.FeedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *PostgresFeedRepository) ListForUser(userID uint, offset, limit int) ([]models.FeedEntry, error) {
	var entries []models.FeedEntry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *PostgresFeedRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FeedEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteByPhoto removes every inbox appearance of a photo, the cascade step of
// photo deletion.
func (r *PostgresFeedRepository) DeleteByPhoto(photoID uint) error {
	return r.db.Where("photo_id = ?", photoID).Delete(&models.FeedEntry{}).Error
}

package repositories

import (
	"strings"

	"github.com/photoshare-app/backend/internal/models"
	"gorm.io/gorm"
)

// PhotoRepository defines the interface for photo data operations
type PhotoRepository interface {
	WithTx(tx *gorm.DB) PhotoRepository
	CreatePhoto(photo *models.Photo) error
	GetPhotoByID(id uint) (*models.Photo, error)
	ListPhotosByUser(userID uint, offset, limit int) ([]models.Photo, error)
	ListRecentPhotos(offset, limit int) ([]models.Photo, error)
	ListPhotosByIDs(ids []uint) ([]models.Photo, error)
	AttachTag(photo *models.Photo, name string) error
	ClearTags(photo *models.Photo) error
	DeletePhoto(photo *models.Photo) error
	TopTags(prefix string, topN int) ([]models.HotTag, error)
}

// PostgresPhotoRepository implements PhotoRepository for PostgreSQL
type PostgresPhotoRepository struct {
	db *gorm.DB
}

// NewPostgresPhotoRepository creates a new PostgresPhotoRepository
func NewPostgresPhotoRepository(db *gorm.DB) *PostgresPhotoRepository {
	return &PostgresPhotoRepository{db: db}
}

func (r *PostgresPhotoRepository) WithTx(tx *gorm.DB) PhotoRepository {
	return &PostgresPhotoRepository{db: tx}
}

// CreatePhoto persists the photo row. Tag associations are attached separately
// so the caller controls write order inside its transaction.
func (r *PostgresPhotoRepository) CreatePhoto(photo *models.Photo) error {
	return r.db.Omit("Tags", "User").Create(photo).Error
}

// GetPhotoByID retrieves a photo with its tags and owner preloaded.
func (r *PostgresPhotoRepository) GetPhotoByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.Preload("Tags").Preload("User").First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *PostgresPhotoRepository) ListPhotosByUser(userID uint, offset, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Preload("Tags").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&photos).Error
	return photos, err
}

func (r *PostgresPhotoRepository) ListRecentPhotos(offset, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Preload("Tags").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&photos).Error
	return photos, err
}

func (r *PostgresPhotoRepository) ListPhotosByIDs(ids []uint) ([]models.Photo, error) {
	var photos []models.Photo
	if len(ids) == 0 {
		return photos, nil
	}
	err := r.db.Preload("Tags").Where("id IN ?", ids).Find(&photos).Error
	return photos, err
}

// AttachTag get-or-creates the deduplicated tag entity and appends it to the
// photo's tag set.
func (r *PostgresPhotoRepository) AttachTag(photo *models.Photo, name string) error {
	var tag models.Tag
	if err := r.db.Where(models.Tag{Tag: name}).FirstOrCreate(&tag).Error; err != nil {
		return err
	}
	return r.db.Model(photo).Association("Tags").Append(&tag)
}

func (r *PostgresPhotoRepository) ClearTags(photo *models.Photo) error {
	return r.db.Model(photo).Association("Tags").Clear()
}

func (r *PostgresPhotoRepository) DeletePhoto(photo *models.Photo) error {
	return r.db.Delete(photo).Error
}

// TopTags returns up to topN tags ranked by the number of photos carrying
// them, optionally filtered by a case-insensitive prefix. Tags with no photos
// are excluded.
func (r *PostgresPhotoRepository) TopTags(prefix string, topN int) ([]models.HotTag, error) {
	var tags []models.HotTag
	q := r.db.Model(&models.Tag{}).
		Select("tags.tag AS tag, COUNT(photo_tags.photo_id) AS count").
		Joins("JOIN photo_tags ON photo_tags.tag_id = tags.id").
		Group("tags.id").
		Order("count DESC").
		Limit(topN)
	if prefix != "" {
		q = q.Where("LOWER(tags.tag) LIKE ?", strings.ToLower(prefix)+"%")
	}
	err := q.Scan(&tags).Error
	return tags, err
}

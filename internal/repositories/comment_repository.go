package repositories

import (
	"github.com/photoshare-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListCommentsByPhoto(photoID uint) ([]models.Comment, error)
	TextsByPhoto(photoID uint) ([]string, error)
	CountByPhoto(photoID uint) (int64, error)
	DeleteComment(comment *models.Comment) error
	DeleteByPhoto(photoID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &PostgresCommentRepository{db: tx}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByPhoto returns the photo's comments oldest first, the order the
// comment list is rendered and mirrored in.
func (r *PostgresCommentRepository) ListCommentsByPhoto(photoID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("photo_id = ?", photoID).Order("created_at ASC, id ASC").Find(&comments).Error
	return comments, err
}

// TextsByPhoto returns just the comment texts, oldest first. This is the
// recompute source for the search mirror's comment-list field.
func (r *PostgresCommentRepository) TextsByPhoto(photoID uint) ([]string, error) {
	texts := []string{}
	err := r.db.Model(&models.Comment{}).Where("photo_id = ?", photoID).
		Order("created_at ASC, id ASC").Pluck("text", &texts).Error
	return texts, err
}

func (r *PostgresCommentRepository) CountByPhoto(photoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("photo_id = ?", photoID).Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) DeleteComment(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}

// DeleteByPhoto removes all of a photo's comments, the cascade step of photo
// deletion.
func (r *PostgresCommentRepository) DeleteByPhoto(photoID uint) error {
	return r.db.Where("photo_id = ?", photoID).Delete(&models.Comment{}).Error
}

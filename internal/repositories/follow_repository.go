package repositories

import (
	"github.com/photoshare-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository is the social graph store: directed follow edges kept in two
// inverse index tables that must always agree.
type FollowRepository interface {
	WithTx(tx *gorm.DB) FollowRepository
	AddEdge(followerID, followeeID uint) error
	RemoveEdge(followerID, followeeID uint) error
	IsFollowing(followerID, followeeID uint) (bool, error)
	FollowerIDs(userID uint) ([]uint, error)
	FollowingIDs(userID uint) ([]uint, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	FollowerCount(userID uint) (int64, error)
	FollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction handle.
func (r *PostgresFollowRepository) WithTx(tx *gorm.DB) FollowRepository {
	return &PostgresFollowRepository{db: tx}
}

// AddEdge inserts the edge follower->followee into both inverse indexes inside
// one transaction. Re-adding an existing edge is a no-op: both inserts carry
// ON CONFLICT DO NOTHING against the unique pair indexes, so a commit can never
// expose the edge on one side only, and never two rows on either side.
func (r *PostgresFollowRepository) AddEdge(followerID, followeeID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		follower := models.FollowerEntry{UserID: followeeID, FollowerID: followerID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follower).Error; err != nil {
			return err
		}
		following := models.FollowingEntry{UserID: followerID, FollowingID: followeeID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&following).Error
	})
}

// RemoveEdge deletes the edge from both inverse indexes inside one transaction.
// Removing a non-existent edge is a no-op, not an error.
func (r *PostgresFollowRepository) RemoveEdge(followerID, followeeID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND follower_id = ?", followeeID, followerID).
			Delete(&models.FollowerEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND following_id = ?", followerID, followeeID).
			Delete(&models.FollowingEntry{}).Error
	})
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FollowerEntry{}).
		Where("user_id = ? AND follower_id = ?", followeeID, followerID).
		Count(&count).Error
	return count > 0, err
}

// FollowerIDs returns the ids of everyone following userID, read from the
// followee->follower index. Inside a transaction this is the follower snapshot
// the fan-out engine materializes feed entries from.
func (r *PostgresFollowRepository) FollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.FollowerEntry{}).Where("user_id = ?", userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) FollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.FollowingEntry{}).Where("user_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.FollowerEntry{}).Select("follower_id").Where("user_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.FollowingEntry{}).Select("following_id").Where("user_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// FollowerCount counts current index membership; there is no stored counter to
// drift from the edge set.
func (r *PostgresFollowRepository) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FollowerEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.FollowingEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

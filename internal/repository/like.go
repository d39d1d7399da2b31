package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for like edges. The
// self-like rule lives in the affinity service, not here.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	ListLikedMessages(ctx context.Context, userID, viewerID uint) ([]models.Message, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyLikedError()
		}
		return models.NewStorageError(err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotLikedError()
	}
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}

// ListLikedMessages returns the messages userID has liked, in the order the
// likes were created. viewerID annotates the liked flag for the requesting
// user, which may differ from the list's owner.
func (r *likeRepository) ListLikedMessages(ctx context.Context, userID, viewerID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := applyMessageDetails(r.db.WithContext(ctx).Model(&models.Message{}), viewerID).
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at ASC").
		Preload("User").
		Find(&messages).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return messages, nil
}

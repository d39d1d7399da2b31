package repository

import (
	"context"
	"errors"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages, including
// the timeline read that merges a user's own messages with those of everyone
// they follow. viewerID annotates results with the liked flag for that user;
// pass 0 for anonymous reads.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id, viewerID uint) (*models.Message, error)
	Delete(ctx context.Context, id uint) error
	ListByAuthor(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Message, error)
	Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// applyMessageDetails adds subqueries to fetch the like count and the
// viewer's liked status in a single query.
func applyMessageDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "messages.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.message_id = messages.id AND likes.user_id = ?) as liked", viewerID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Message, error) {
	var message models.Message
	if err := applyMessageDetails(r.db.WithContext(ctx).Model(&models.Message{}), viewerID).
		Preload("User").
		First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &message, nil
}

// Delete removes the message along with its like edges. Authorship is checked
// by the message service before this runs.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Message{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Message", id)
		}
		return models.NewStorageError(err)
	}
	return nil
}

func (r *messageRepository) ListByAuthor(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := applyMessageDetails(r.db.WithContext(ctx).Model(&models.Message{}), viewerID).
		Where("messages.user_id = ?", userID).
		Order("messages.created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("User").
		Find(&messages).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return messages, nil
}

// Timeline returns the newest messages authored by userID or by anyone they
// follow. The follow set is resolved inside the query, so the result always
// reflects the graph as of this read.
func (r *messageRepository) Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	followees := r.db.Model(&models.Follow{}).
		Select("followee_id").
		Where("follower_id = ?", userID)

	var messages []models.Message
	if err := applyMessageDetails(r.db.WithContext(ctx).Model(&models.Message{}), userID).
		Where("messages.user_id = ? OR messages.user_id IN (?)", userID, followees).
		Order("messages.created_at DESC").
		Limit(limit).
		Preload("User").
		Find(&messages).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return messages, nil
}

package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// MessageService provides message creation and deletion business logic.
// Messages are immutable; there is no update path.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// CreateMessage validates and stores a new message for userID.
func (s *MessageService) CreateMessage(ctx context.Context, userID uint, text string) (*models.Message, error) {
	if err := validation.ValidateMessageText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return s.messageRepo.GetByID(ctx, message.ID, userID)
}

// GetMessage returns a single message with its like annotations for viewerID.
func (s *MessageService) GetMessage(ctx context.Context, id, viewerID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id, viewerID)
}

// DeleteMessage removes a message. Only the author may delete it; anyone
// else gets an authorization error regardless of the message's visibility.
func (s *MessageService) DeleteMessage(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if message.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own messages")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

// ListByAuthor returns a page of userID's messages, newest first.
func (s *MessageService) ListByAuthor(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByAuthor(ctx, userID, viewerID, limit, offset)
}

package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// AffinityService provides like/unlike business logic. Users may not like
// their own messages, and redundant likes are rejected as conflicts.
type AffinityService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewAffinityService returns a new AffinityService.
func NewAffinityService(likeRepo repository.LikeRepository, messageRepo repository.MessageRepository, userRepo repository.UserRepository) *AffinityService {
	return &AffinityService{
		likeRepo:    likeRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Like records that userID liked messageID.
func (s *AffinityService) Like(ctx context.Context, userID, messageID uint) (*models.Like, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	if message.UserID == userID {
		return nil, models.NewSelfLikeError()
	}

	exists, err := s.likeRepo.Exists(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewAlreadyLikedError()
	}

	like := &models.Like{
		UserID:    userID,
		MessageID: messageID,
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		middleware.GraphMutations.WithLabelValues("like", "error").Inc()
		return nil, err
	}

	middleware.GraphMutations.WithLabelValues("like", "ok").Inc()
	return like, nil
}

// Unlike removes userID's like on messageID.
func (s *AffinityService) Unlike(ctx context.Context, userID, messageID uint) error {
	if _, err := s.messageRepo.GetByID(ctx, messageID, userID); err != nil {
		return err
	}

	if err := s.likeRepo.Delete(ctx, userID, messageID); err != nil {
		middleware.GraphMutations.WithLabelValues("unlike", "error").Inc()
		return err
	}

	middleware.GraphMutations.WithLabelValues("unlike", "ok").Inc()
	return nil
}

// ListLiked returns the messages userID has liked, oldest like first. The
// user must exist; an unknown ID is not-found rather than an empty list.
func (s *AffinityService) ListLiked(ctx context.Context, userID, viewerID uint) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.likeRepo.ListLikedMessages(ctx, userID, viewerID)
}

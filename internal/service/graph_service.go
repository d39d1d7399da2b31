package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// GraphService provides follow-graph business logic. The structural rules
// live here: a user cannot follow themselves, the target must exist, and
// redundant follow/unfollow requests are rejected as conflicts.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewGraphService returns a new GraphService.
func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from userID to targetUserID.
func (s *GraphService) Follow(ctx context.Context, userID, targetUserID uint) (*models.Follow, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	exists, err := s.followRepo.Exists(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewAlreadyFollowingError()
	}

	follow := &models.Follow{
		FollowerID: userID,
		FolloweeID: targetUserID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		middleware.GraphMutations.WithLabelValues("follow", "error").Inc()
		return nil, err
	}

	middleware.GraphMutations.WithLabelValues("follow", "ok").Inc()
	return follow, nil
}

// Unfollow removes the follow edge from userID to targetUserID.
func (s *GraphService) Unfollow(ctx context.Context, userID, targetUserID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, userID, targetUserID); err != nil {
		middleware.GraphMutations.WithLabelValues("unfollow", "error").Inc()
		return err
	}

	middleware.GraphMutations.WithLabelValues("unfollow", "ok").Inc()
	return nil
}

// IsFollowing reports whether userID follows targetUserID.
func (s *GraphService) IsFollowing(ctx context.Context, userID, targetUserID uint) (bool, error) {
	return s.followRepo.Exists(ctx, userID, targetUserID)
}

// ListFollowing returns the users that userID follows.
func (s *GraphService) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID)
}

// ListFollowers returns the users following userID.
func (s *GraphService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID)
}

// Counts returns the following and follower counts for userID.
func (s *GraphService) Counts(ctx context.Context, userID uint) (following int64, followers int64, err error) {
	following, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	followers, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return following, followers, nil
}

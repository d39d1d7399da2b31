package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// TimelineLimit caps how many messages a single timeline read returns.
const TimelineLimit = 100

// Timeline is a composed home feed. Authenticated reads merge the viewer's
// own messages with those of everyone they follow. Anonymous reads carry no
// messages at all; Authenticated lets callers tell that apart from a
// logged-in user whose feed happens to be empty.
type Timeline struct {
	Authenticated bool             `json:"authenticated"`
	Messages      []models.Message `json:"messages"`
}

// TimelineService composes home timelines. The feed is recomputed from the
// follow graph on every read; nothing is precomputed or fanned out.
type TimelineService struct {
	messageRepo repository.MessageRepository
}

// NewTimelineService returns a new TimelineService.
func NewTimelineService(messageRepo repository.MessageRepository) *TimelineService {
	return &TimelineService{messageRepo: messageRepo}
}

// Home returns the timeline for the given viewer. A nil userID yields the
// anonymous variant.
func (s *TimelineService) Home(ctx context.Context, userID *uint) (*Timeline, error) {
	if userID == nil {
		middleware.TimelineQueries.WithLabelValues("anonymous").Inc()
		return &Timeline{Authenticated: false, Messages: []models.Message{}}, nil
	}

	middleware.TimelineQueries.WithLabelValues("home").Inc()
	messages, err := s.messageRepo.Timeline(ctx, *userID, TimelineLimit)
	if err != nil {
		return nil, err
	}
	return &Timeline{Authenticated: true, Messages: messages}, nil
}

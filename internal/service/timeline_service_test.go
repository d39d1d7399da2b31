package service

import (
	"context"
	"testing"

	"warbler/internal/models"
)

func TestTimelineServiceHomeAuthenticated(t *testing.T) {
	var gotUserID uint
	var gotLimit int
	messages := noopMessageRepo()
	messages.timelineFn = func(_ context.Context, userID uint, limit int) ([]models.Message, error) {
		gotUserID, gotLimit = userID, limit
		return []models.Message{{ID: 2}, {ID: 1}}, nil
	}

	svc := NewTimelineService(messages)
	userID := uint(7)
	timeline, err := svc.Home(context.Background(), &userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !timeline.Authenticated {
		t.Fatal("expected authenticated timeline")
	}
	if gotUserID != 7 {
		t.Fatalf("composed timeline for wrong user: %d", gotUserID)
	}
	if gotLimit != TimelineLimit {
		t.Fatalf("expected limit %d, got %d", TimelineLimit, gotLimit)
	}
	if len(timeline.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(timeline.Messages))
	}
}

func TestTimelineServiceHomeAnonymous(t *testing.T) {
	messages := noopMessageRepo()
	messages.timelineFn = func(context.Context, uint, int) ([]models.Message, error) {
		t.Fatal("anonymous reads must not touch the follow graph")
		return nil, nil
	}

	svc := NewTimelineService(messages)
	timeline, err := svc.Home(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline.Authenticated {
		t.Fatal("expected anonymous timeline")
	}
	if len(timeline.Messages) != 0 {
		t.Fatalf("anonymous timeline must carry no messages, got %d", len(timeline.Messages))
	}
	if timeline.Messages == nil {
		t.Fatal("messages should serialize as an empty list, not null")
	}
}

func TestTimelineServiceHomeStorageError(t *testing.T) {
	messages := noopMessageRepo()
	messages.timelineFn = func(context.Context, uint, int) ([]models.Message, error) {
		return nil, models.NewStorageError(context.DeadlineExceeded)
	}

	svc := NewTimelineService(messages)
	userID := uint(1)
	_, err := svc.Home(context.Background(), &userID)
	if !models.HasCode(err, models.CodeStorage) {
		t.Fatalf("expected storage error, got %#v", err)
	}
}

package service

import (
	"context"
	"strings"
	"testing"

	"warbler/internal/models"
)

func TestMessageServiceCreateBlankText(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopUserRepo())
	_, err := svc.CreateMessage(context.Background(), 1, "   ")
	if !models.HasCode(err, models.CodeValidation) {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestMessageServiceCreateTooLong(t *testing.T) {
	svc := NewMessageService(noopMessageRepo(), noopUserRepo())
	_, err := svc.CreateMessage(context.Background(), 1, strings.Repeat("a", 141))
	if !models.HasCode(err, models.CodeValidation) {
		t.Fatalf("expected validation error, got %#v", err)
	}
}

func TestMessageServiceCreateMaxLengthCountsRunes(t *testing.T) {
	// 140 multi-byte characters are within the limit even though the byte
	// count is far larger.
	text := strings.Repeat("é", 140)

	var created *models.Message
	messages := noopMessageRepo()
	messages.createFn = func(_ context.Context, m *models.Message) error {
		m.ID = 7
		created = m
		return nil
	}
	messages.getByIDFn = func(context.Context, uint, uint) (*models.Message, error) {
		return created, nil
	}

	svc := NewMessageService(messages, noopUserRepo())
	message, err := svc.CreateMessage(context.Background(), 1, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message.Text != text {
		t.Fatal("text was altered on create")
	}
}

func TestMessageServiceDeleteNotAuthor(t *testing.T) {
	messages := noopMessageRepo()
	messages.getByIDFn = func(context.Context, uint, uint) (*models.Message, error) {
		return &models.Message{ID: 10, UserID: 2}, nil
	}
	deleted := false
	messages.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewMessageService(messages, noopUserRepo())
	err := svc.DeleteMessage(context.Background(), 1, 10)
	if !models.HasCode(err, models.CodeUnauthorized) {
		t.Fatalf("expected unauthorized error, got %#v", err)
	}
	if deleted {
		t.Fatal("message must not be deleted by a non-author")
	}
}

func TestMessageServiceDeleteByAuthor(t *testing.T) {
	messages := noopMessageRepo()
	messages.getByIDFn = func(context.Context, uint, uint) (*models.Message, error) {
		return &models.Message{ID: 10, UserID: 1}, nil
	}
	var deletedID uint
	messages.deleteFn = func(_ context.Context, id uint) error {
		deletedID = id
		return nil
	}

	svc := NewMessageService(messages, noopUserRepo())
	if err := svc.DeleteMessage(context.Background(), 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != 10 {
		t.Fatalf("deleted wrong message: %d", deletedID)
	}
}

func TestMessageServiceListByAuthorUnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(ctx context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewMessageService(noopMessageRepo(), users)
	_, err := svc.ListByAuthor(context.Background(), 99, 0, 20, 0)
	if !models.HasCode(err, models.CodeNotFound) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
}

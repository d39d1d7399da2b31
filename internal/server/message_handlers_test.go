package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warbler/internal/config"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLikeRepository is a mock of the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ListLikedMessages(ctx context.Context, userID, viewerID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID, viewerID)
	return args.Get(0).([]models.Message), args.Error(1)
}


func newMessageTestServer(messages *MockMessageRepository, likes *MockLikeRepository, users *MockUserRepository) *Server {
	return &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		messages: service.NewMessageService(messages, users),
		affinity: service.NewAffinityService(likes, messages, users),
	}
}

func TestCreateMessage(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		mockSetup      func(*MockMessageRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			text: "hello, warbler",
			mockSetup: func(m *MockMessageRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
				m.On("GetByID", mock.Anything, mock.Anything, uint(1)).
					Return(&models.Message{ID: 1, Text: "hello, warbler", UserID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Blank Text",
			text:           "   ",
			mockSetup:      func(*MockMessageRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Too Long",
			text:           strings.Repeat("a", 141),
			mockSetup:      func(*MockMessageRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := new(MockMessageRepository)
			tt.mockSetup(messages)

			app := fiber.New()
			s := newMessageTestServer(messages, new(MockLikeRepository), new(MockUserRepository))
			app.Post("/messages", asUser(1), s.CreateMessage)

			body, _ := json.Marshal(map[string]string{"text": tt.text})
			req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			messages.AssertExpectations(t)
		})
	}
}

func TestDeleteMessage_AuthorOnly(t *testing.T) {
	tests := []struct {
		name           string
		authorID       uint
		mockSetup      func(*MockMessageRepository)
		expectedStatus int
	}{
		{
			name:     "Author Deletes",
			authorID: 1,
			mockSetup: func(m *MockMessageRepository) {
				m.On("Delete", mock.Anything, uint(10)).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Non-Author Forbidden",
			authorID:       2,
			mockSetup:      func(*MockMessageRepository) {},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := new(MockMessageRepository)
			messages.On("GetByID", mock.Anything, uint(10), uint(1)).
				Return(&models.Message{ID: 10, UserID: tt.authorID}, nil)
			tt.mockSetup(messages)

			app := fiber.New()
			s := newMessageTestServer(messages, new(MockLikeRepository), new(MockUserRepository))
			app.Delete("/messages/:id", asUser(1), s.DeleteMessage)

			resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/messages/10", nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			messages.AssertExpectations(t)
		})
	}
}

func TestLikeMessage(t *testing.T) {
	tests := []struct {
		name           string
		authorID       uint
		mockSetup      func(*MockLikeRepository)
		expectedStatus int
	}{
		{
			name:     "Success",
			authorID: 2,
			mockSetup: func(l *MockLikeRepository) {
				l.On("Exists", mock.Anything, uint(1), uint(10)).Return(false, nil)
				l.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Own Message",
			authorID:       1,
			mockSetup:      func(*MockLikeRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "Already Liked",
			authorID: 2,
			mockSetup: func(l *MockLikeRepository) {
				l.On("Exists", mock.Anything, uint(1), uint(10)).Return(true, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := new(MockMessageRepository)
			messages.On("GetByID", mock.Anything, uint(10), uint(1)).
				Return(&models.Message{ID: 10, UserID: tt.authorID}, nil)
			likes := new(MockLikeRepository)
			tt.mockSetup(likes)

			app := fiber.New()
			s := newMessageTestServer(messages, likes, new(MockUserRepository))
			app.Post("/messages/:id/like", asUser(1), s.LikeMessage)

			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/messages/10/like", nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			likes.AssertExpectations(t)
		})
	}
}

func TestUnlikeMessage_NotLiked(t *testing.T) {
	messages := new(MockMessageRepository)
	messages.On("GetByID", mock.Anything, uint(10), uint(1)).
		Return(&models.Message{ID: 10, UserID: 2}, nil)
	likes := new(MockLikeRepository)
	likes.On("Delete", mock.Anything, uint(1), uint(10)).
		Return(models.NewNotLikedError())

	app := fiber.New()
	s := newMessageTestServer(messages, likes, new(MockUserRepository))
	app.Delete("/messages/:id/like", asUser(1), s.UnlikeMessage)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/messages/10/like", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	likes.AssertExpectations(t)
}

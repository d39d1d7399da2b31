package service

import (
	"context"

	"warbler/internal/models"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	searchFn        func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:        func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

type followRepoStub struct {
	createFn         func(context.Context, *models.Follow) error
	deleteFn         func(context.Context, uint, uint) error
	existsFn         func(context.Context, uint, uint) (bool, error)
	listFollowingFn  func(context.Context, uint) ([]models.User, error)
	listFollowersFn  func(context.Context, uint) ([]models.User, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	countFollowersFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(context.Context, *models.Follow) error { return nil },
		deleteFn:         func(context.Context, uint, uint) error { return nil },
		existsFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		listFollowingFn:  func(context.Context, uint) ([]models.User, error) { return nil, nil },
		listFollowersFn:  func(context.Context, uint) ([]models.User, error) { return nil, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type likeRepoStub struct {
	createFn            func(context.Context, *models.Like) error
	deleteFn            func(context.Context, uint, uint) error
	existsFn            func(context.Context, uint, uint) (bool, error)
	listLikedMessagesFn func(context.Context, uint, uint) ([]models.Message, error)
}

func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, messageID uint) error {
	return s.deleteFn(ctx, userID, messageID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.existsFn(ctx, userID, messageID)
}
func (s *likeRepoStub) ListLikedMessages(ctx context.Context, userID, viewerID uint) ([]models.Message, error) {
	return s.listLikedMessagesFn(ctx, userID, viewerID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:            func(context.Context, *models.Like) error { return nil },
		deleteFn:            func(context.Context, uint, uint) error { return nil },
		existsFn:            func(context.Context, uint, uint) (bool, error) { return false, nil },
		listLikedMessagesFn: func(context.Context, uint, uint) ([]models.Message, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn       func(context.Context, *models.Message) error
	getByIDFn      func(context.Context, uint, uint) (*models.Message, error)
	deleteFn       func(context.Context, uint) error
	listByAuthorFn func(context.Context, uint, uint, int, int) ([]models.Message, error)
	timelineFn     func(context.Context, uint, int) ([]models.Message, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *messageRepoStub) ListByAuthor(ctx context.Context, userID, viewerID uint, limit, offset int) ([]models.Message, error) {
	return s.listByAuthorFn(ctx, userID, viewerID, limit, offset)
}
func (s *messageRepoStub) Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.timelineFn(ctx, userID, limit)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:  func(context.Context, *models.Message) error { return nil },
		getByIDFn: func(context.Context, uint, uint) (*models.Message, error) { return &models.Message{}, nil },
		deleteFn:  func(context.Context, uint) error { return nil },
		listByAuthorFn: func(context.Context, uint, uint, int, int) ([]models.Message, error) {
			return nil, nil
		},
		timelineFn: func(context.Context, uint, int) ([]models.Message, error) { return nil, nil },
	}
}

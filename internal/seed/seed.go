// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMessages int
	ShouldClean bool
	// MaxDays bounds how far back seeded timestamps are spread.
	MaxDays int
}

// Seed populates the database with test data: users, messages, a follow
// mesh, and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d messages...", opts.NumUsers, opts.NumMessages)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	messages, err := f.CreateMessages(users, opts.NumMessages)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("%d messages created", len(messages))

	follows, err := f.CreateFollowMesh(users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("%d follow edges created", follows)

	likes, err := f.CreateLikes(users, messages)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("%d likes created", likes)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE likes, follows, messages, users CASCADE").Error
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser() *models.User {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := fmt.Sprintf("%s%s%d",
		strings.ToLower(first), strings.ToLower(last), f.rng.Intn(1000))

	return &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Bio:      gofakeit.Sentence(8),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", username),
	}
}

// clampText trims text to the message length limit. The limit counts
// characters, not bytes, so the cut never splits a multibyte rune.
func clampText(text string) string {
	runes := []rune(text)
	if len(runes) > models.MaxMessageLength {
		return strings.TrimSpace(string(runes[:models.MaxMessageLength]))
	}
	return text
}

// BuildMessage constructs a message for the given author without persisting
// it. The text always fits within the message length limit and the
// timestamp is spread over the configured window.
func (f *Factory) BuildMessage(user *models.User) *models.Message {
	text := clampText(gofakeit.Sentence(6 + f.rng.Intn(8)))

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute

	return &models.Message{
		Text:      text,
		UserID:    user.ID,
		CreatedAt: time.Now().Add(-back),
	}
}

// CreateUsers persists count users sharing a known development password.
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := f.BuildUser()
		user.Password = string(hashed)
		if err := f.db.Create(user).Error; err != nil {
			// Username collisions are possible with random data; skip and
			// move on.
			continue
		}
		users = append(users, *user)
	}
	return users, nil
}

// CreateMessages persists count messages spread across the given users.
func (f *Factory) CreateMessages(users []models.User, count int) ([]models.Message, error) {
	if len(users) == 0 {
		return nil, nil
	}

	messages := make([]models.Message, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.rng.Intn(len(users))]
		message := f.BuildMessage(&author)
		if err := f.db.Create(message).Error; err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	return messages, nil
}

// CreateFollowMesh gives every user a handful of followees. Self-follows
// and duplicate edges are skipped.
func (f *Factory) CreateFollowMesh(users []models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		targets := 1 + f.rng.Intn(5)
		seen := map[uint]bool{follower.ID: true}
		for i := 0; i < targets; i++ {
			followee := users[f.rng.Intn(len(users))]
			if seen[followee.ID] {
				continue
			}
			seen[followee.ID] = true

			follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			if err := f.db.Create(follow).Error; err != nil {
				continue
			}
			created++
		}
	}
	return created, nil
}

// CreateLikes sprinkles likes over the messages. Authors never like their
// own messages and duplicates are skipped.
func (f *Factory) CreateLikes(users []models.User, messages []models.Message) (int, error) {
	if len(users) == 0 || len(messages) == 0 {
		return 0, nil
	}

	created := 0
	attempts := len(messages) * 2
	for i := 0; i < attempts; i++ {
		user := users[f.rng.Intn(len(users))]
		message := messages[f.rng.Intn(len(messages))]
		if message.UserID == user.ID {
			continue
		}

		like := &models.Like{UserID: user.ID, MessageID: message.ID}
		if err := f.db.Create(like).Error; err != nil {
			continue
		}
		created++
	}
	return created, nil
}

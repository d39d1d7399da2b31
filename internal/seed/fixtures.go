package seed

import (
	"fmt"
	"os"

	"warbler/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixture describes a deterministic dataset loaded from YAML. Unlike the
// random seeder, fixtures produce the same graph every run, which demo
// environments and integration tests rely on.
type Fixture struct {
	Users []struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Bio      string `yaml:"bio"`
		Location string `yaml:"location"`
	} `yaml:"users"`
	Messages []struct {
		Username string `yaml:"username"`
		Text     string `yaml:"text"`
	} `yaml:"messages"`
	Follows []struct {
		Follower string `yaml:"follower"`
		Followee string `yaml:"followee"`
	} `yaml:"follows"`
	Likes []struct {
		Username     string `yaml:"username"`
		MessageIndex int    `yaml:"message_index"`
	} `yaml:"likes"`
}

// LoadFixture parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture parses fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

// Apply persists the fixture's users, messages, follows, and likes.
func (fx *Fixture) Apply(db *gorm.DB) error {
	usersByName := make(map[string]*models.User, len(fx.Users))
	for _, u := range fx.Users {
		password := u.Password
		if password == "" {
			password = "Password123"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			return err
		}

		user := &models.User{
			Username: u.Username,
			Email:    u.Email,
			Password: string(hashed),
			Bio:      u.Bio,
			Location: u.Location,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("creating fixture user %s: %w", u.Username, err)
		}
		usersByName[u.Username] = user
	}

	messages := make([]*models.Message, 0, len(fx.Messages))
	for _, m := range fx.Messages {
		author, ok := usersByName[m.Username]
		if !ok {
			return fmt.Errorf("fixture message references unknown user %s", m.Username)
		}
		message := &models.Message{Text: m.Text, UserID: author.ID}
		if err := db.Create(message).Error; err != nil {
			return fmt.Errorf("creating fixture message: %w", err)
		}
		messages = append(messages, message)
	}

	for _, f := range fx.Follows {
		follower, ok := usersByName[f.Follower]
		if !ok {
			return fmt.Errorf("fixture follow references unknown user %s", f.Follower)
		}
		followee, ok := usersByName[f.Followee]
		if !ok {
			return fmt.Errorf("fixture follow references unknown user %s", f.Followee)
		}
		follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
		if err := db.Create(follow).Error; err != nil {
			return fmt.Errorf("creating fixture follow: %w", err)
		}
	}

	for _, l := range fx.Likes {
		user, ok := usersByName[l.Username]
		if !ok {
			return fmt.Errorf("fixture like references unknown user %s", l.Username)
		}
		if l.MessageIndex < 0 || l.MessageIndex >= len(messages) {
			return fmt.Errorf("fixture like references message index %d out of range", l.MessageIndex)
		}
		like := &models.Like{UserID: user.ID, MessageID: messages[l.MessageIndex].ID}
		if err := db.Create(like).Error; err != nil {
			return fmt.Errorf("creating fixture like: %w", err)
		}
	}

	return nil
}

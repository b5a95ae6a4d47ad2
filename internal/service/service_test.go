package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		FullName: "User " + username,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, authorID, text string, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{ID: uuid.New().String(), AuthorID: authorID, Text: text, CreatedAt: createdAt}
	require.NoError(t, db.Create(p).Error)
	return p
}

// recordingStorage 记录 Upload/Destroy 调用，测异步清理
type recordingStorage struct {
	mu        sync.Mutex
	uploaded  []string
	destroyed []string
}

func (s *recordingStorage) Upload(_ context.Context, data string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded = append(s.uploaded, data)
	return "https://img.example.com/v123/" + uuid.New().String() + ".png", nil
}

func (s *recordingStorage) Destroy(_ context.Context, assetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, assetURL)
	return nil
}

func (s *recordingStorage) Uploaded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploaded...)
}

func (s *recordingStorage) Destroyed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.destroyed...)
}

func defaultNotify() config.NotifyConfig {
	return config.NotifyConfig{Like: true, Follow: true, Comment: false}
}

func newEngagement(db *gorm.DB, notify config.NotifyConfig) service.EngagementService {
	return service.NewEngagementService(db,
		repository.NewUserRepository(db),
		repository.NewPostRepository(db),
		repository.NewLikeRepository(db),
		notify,
	)
}

func newFeed(db *gorm.DB) service.FeedService {
	return service.NewFeedService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		repository.NewLikeRepository(db),
	)
}

func countRows(t *testing.T, db *gorm.DB, m any, query string, args ...any) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(m).Where(query, args...).Count(&cnt).Error)
	return cnt
}

// Package cacheindex keeps a redis set of all user ids so the suggested-users
// endpoint can sample candidates without a table scan. The index is built
// lazily from the primary store and expires on its own; consistency-bearing
// reads never go through here.
package cacheindex

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
)

const indexKey = "users:index"

type UserIndex struct {
	db    *gorm.DB
	cache *redis.Client
	ttl   time.Duration
}

func NewUserIndex(db *gorm.DB, cache *redis.Client, ttl time.Duration) *UserIndex {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserIndex{db: db, cache: cache, ttl: ttl}
}

// SampleIDs returns up to n pseudo-random user ids via SRANDMEMBER,
// rebuilding the index from the DB on a cold cache.
func (s *UserIndex) SampleIDs(ctx context.Context, n int) ([]string, error) {
	ids, err := s.cache.SRandMemberN(ctx, indexKey, int64(n)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if len(ids) > 0 {
		return ids, nil
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.cache.SRandMemberN(ctx, indexKey, int64(n)).Result()
}

// Remove drops one id from the index (account deletion).
func (s *UserIndex) Remove(ctx context.Context, userID string) error {
	return s.cache.SRem(ctx, indexKey, userID).Err()
}

// Invalidate drops the whole index; next sample rebuilds it.
func (s *UserIndex) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, indexKey).Err()
}

func (s *UserIndex) load(ctx context.Context) error {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.User{}).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	pipe := s.cache.Pipeline()
	pipe.SAdd(ctx, indexKey, members...)
	pipe.Expire(ctx, indexKey, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

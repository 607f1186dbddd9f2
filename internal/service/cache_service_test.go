package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

type memCacheRepo struct {
	entries map[string][]byte
	getErr  error
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: make(map[string][]byte)}
}

func (m *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestCacheServiceHitAndMiss(t *testing.T) {
	repo := newMemCacheRepo()
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, time.Minute, nil, true)
	ctx := context.Background()

	var out map[string]int
	assert.False(t, cache.Get(ctx, "k", &out))
	cache.Set(ctx, "k", map[string]int{"a": 1}, 0)
	assert.True(t, cache.Get(ctx, "k", &out))
	assert.Equal(t, 1, out["a"])

	assert.Equal(t, 0.5, metrics.Snapshot().CacheHitRatio)

	require.NoError(t, cache.Invalidate(ctx, "*"))
	assert.False(t, cache.Get(ctx, "k", &out))
}

func TestCacheServiceDisabledAndBackendErrors(t *testing.T) {
	var nilCache *CacheService
	assert.False(t, nilCache.Get(context.Background(), "k", &struct{}{}))
	nilCache.Set(context.Background(), "k", 1, 0)

	repo := newMemCacheRepo()
	disabled := NewCacheService(repo, nil, 0, nil, false)
	disabled.Set(context.Background(), "k", 1, 0)
	assert.Empty(t, repo.entries)

	repo.getErr = errors.New("redis: i/o timeout")
	cache := NewCacheService(repo, nil, 0, nil, true)
	var out int
	assert.False(t, cache.Get(context.Background(), "k", &out))
}

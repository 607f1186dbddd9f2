package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

func TestCacheKeyIsNamespaced(t *testing.T) {
	assert.Equal(t, "plant_shift:cache:shift_report:SR-1", CacheKey("shift_report:SR-1"))
	assert.False(t, strings.HasPrefix(CacheKey("x"), draftKeyPrefix))
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var out map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "k", &out), appErrors.ErrCacheMiss)
	require.NoError(t, repo.Set(ctx, "k", map[string]string{"a": "b"}, 0))
	require.NoError(t, repo.DeleteByPattern(ctx, "*"))
}

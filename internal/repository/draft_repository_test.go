package repository

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

// memRedis answers GET/SET/DEL/EXISTS from memory through a client hook, so no server is dialed.
type memRedis struct {
	data map[string]string
	ttl  map[string]time.Duration
	fail error
}

func newMemRedisClient(t *testing.T) (*redis.Client, *memRedis) {
	t.Helper()
	mem := &memRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(mem)
	t.Cleanup(func() { _ = client.Close() })
	return client, mem
}

func (m *memRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("memRedis does not dial")
	}
}

func (m *memRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if m.fail != nil {
			cmd.SetErr(m.fail)
			return m.fail
		}
		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			val, ok := m.data[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(val)
		case *redis.StatusCmd:
			key := args[1].(string)
			m.data[key] = string(args[2].([]byte))
			if len(args) == 5 {
				n := args[4].(int64)
				if args[3] == "px" {
					m.ttl[key] = time.Duration(n) * time.Millisecond
				} else {
					m.ttl[key] = time.Duration(n) * time.Second
				}
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			var n int64
			for _, arg := range args[1:] {
				key := arg.(string)
				if _, ok := m.data[key]; ok {
					n++
					if cmd.Name() == "del" {
						delete(m.data, key)
						delete(m.ttl, key)
					}
				}
			}
			c.SetVal(n)
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func newStoredDraft() *models.ShiftDraft {
	info := models.ShiftInfo{
		Date:         jalali.MustParse("1403/01/01"),
		Crew:         models.CrewB,
		RotationType: models.RotationDay2,
		Duration:     "12:00",
		SupervisorID: "sup-1",
	}
	return models.NewShiftDraft("sup-1", info, time.Date(2024, 3, 20, 7, 0, 0, 0, time.UTC))
}

func TestDraftRepositorySaveGetDelete(t *testing.T) {
	client, mem := newMemRedisClient(t)
	repo := NewDraftRepository(client, nil)
	ctx := context.Background()

	draft := newStoredDraft()
	require.NoError(t, draft.Feed.SetTonnage(models.Line1, 1, 120))
	require.NoError(t, repo.Save(ctx, draft, 24*time.Hour))
	assert.Equal(t, 24*time.Hour, mem.ttl["shift_draft:sup-1"])

	exists, err := repo.Exists(ctx, "sup-1")
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := repo.Get(ctx, "sup-1")
	require.NoError(t, err)
	assert.Equal(t, models.CrewB, loaded.Info.Crew)
	assert.Equal(t, 120.0, loaded.Feed.Tonnage(models.Line1, 12))

	require.NoError(t, repo.Save(ctx, loaded, 90*time.Minute))
	assert.Equal(t, 90*time.Minute, mem.ttl["shift_draft:sup-1"])

	require.NoError(t, repo.Delete(ctx, "sup-1"))
	require.NoError(t, repo.Delete(ctx, "sup-1"))
	exists, err = repo.Exists(ctx, "sup-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDraftRepositoryMissingDraftIsNotFound(t *testing.T) {
	client, _ := newMemRedisClient(t)
	repo := NewDraftRepository(client, nil)

	_, err := repo.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestDraftRepositoryRepairsMissingFeed(t *testing.T) {
	client, mem := newMemRedisClient(t)
	repo := NewDraftRepository(client, nil)
	mem.data["shift_draft:sup-2"] = `{"owner_id":"sup-2","section":2,"feed":null}`

	draft, err := repo.Get(context.Background(), "sup-2")
	require.NoError(t, err)
	require.NotNil(t, draft.Feed)
	assert.Zero(t, draft.Feed.Tonnage(models.Line2, 1))

	mem.data["shift_draft:sup-3"] = `{not json`
	_, err = repo.Get(context.Background(), "sup-3")
	assert.Error(t, err)
}

func TestDraftRepositoryBackendErrorsAreNotNotFound(t *testing.T) {
	client, mem := newMemRedisClient(t)
	repo := NewDraftRepository(client, nil)
	mem.fail = errors.New("READONLY You can't write against a read only replica")
	ctx := context.Background()

	_, err := repo.Get(ctx, "sup-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Error(t, repo.Save(ctx, newStoredDraft(), time.Hour))
	assert.Error(t, repo.Delete(ctx, "sup-1"))
	_, err = repo.Exists(ctx, "sup-1")
	assert.Error(t, err)
}

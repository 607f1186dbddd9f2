package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	job Job
	err error
}

func waitOutcome(t *testing.T, ch <-chan outcome) outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
		return outcome{}
	}
}

func TestQueueRetriesUntilSuccess(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	results := make(chan outcome, 1)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		OnResult:   func(job Job, err error) { results <- outcome{job, err} },
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j-1", Type: "archive"}))
	got := waitOutcome(t, results)
	assert.NoError(t, got.err)
	assert.Equal(t, 2, got.job.Attempt)
	assert.Equal(t, Stats{Processed: 1, Retried: 2}, q.Stats())
}

func TestQueueDiscardsAfterMaxRetries(t *testing.T) {
	results := make(chan outcome, 1)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		return errors.New("disk full")
	}, QueueConfig{
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		OnResult:   func(job Job, err error) { results <- outcome{job, err} },
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j-2"}))
	got := waitOutcome(t, results)
	assert.EqualError(t, got.err, "disk full")
	assert.Equal(t, Stats{Retried: 1, Discarded: 1}, q.Stats())
}

func TestQueueEnqueueRequiresStart(t *testing.T) {
	q := NewQueue("idle", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "x"}))

	q.Start(context.Background())
	q.Stop()
	assert.Error(t, q.Enqueue(Job{ID: "y"}))
}

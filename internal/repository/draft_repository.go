package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

const draftKeyPrefix = "shift_draft:"

// DraftRepository keeps each user's in-progress shift draft in Redis.
type DraftRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewDraftRepository constructs the repository.
func NewDraftRepository(client *redis.Client, logger *zap.Logger) *DraftRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftRepository{client: client, logger: logger}
}

func draftKey(ownerID string) string {
	return draftKeyPrefix + ownerID
}

// Get loads the draft owned by ownerID.
func (r *DraftRepository) Get(ctx context.Context, ownerID string) (*models.ShiftDraft, error) {
	raw, err := r.client.Get(ctx, draftKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no shift draft in progress")
		}
		return nil, fmt.Errorf("redis get draft %s: %w", ownerID, err)
	}
	var draft models.ShiftDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft %s: %w", ownerID, err)
	}
	if draft.Feed == nil {
		draft.Feed = models.NewFeedAllocation()
	}
	return &draft, nil
}

// Save stores draft under its owner, refreshing the TTL.
func (r *DraftRepository) Save(ctx context.Context, draft *models.ShiftDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft %s: %w", draft.OwnerID, err)
	}
	if err := r.client.Set(ctx, draftKey(draft.OwnerID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft %s: %w", draft.OwnerID, err)
	}
	return nil
}

// Delete removes the owner's draft. Missing drafts are not an error.
func (r *DraftRepository) Delete(ctx context.Context, ownerID string) error {
	if err := r.client.Del(ctx, draftKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis delete draft %s: %w", ownerID, err)
	}
	return nil
}

// Exists reports whether ownerID has a draft in progress.
func (r *DraftRepository) Exists(ctx context.Context, ownerID string) (bool, error) {
	n, err := r.client.Exists(ctx, draftKey(ownerID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists draft %s: %w", ownerID, err)
	}
	return n > 0, nil
}

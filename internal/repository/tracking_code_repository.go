package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// TrackingCodeRepository derives the next tracking code from the codes already stored.
type TrackingCodeRepository struct {
	db *sqlx.DB
}

// NewTrackingCodeRepository constructs the repository.
func NewTrackingCodeRepository(db *sqlx.DB) *TrackingCodeRepository {
	return &TrackingCodeRepository{db: db}
}

// NextCode returns prefix followed by the zero-padded successor of the highest code sharing prefix.
func (r *TrackingCodeRepository) NextCode(ctx context.Context, prefix string) (string, error) {
	const query = `SELECT code FROM shift_reports WHERE code LIKE $1 ORDER BY LENGTH(code) DESC, code DESC LIMIT 1`
	var last string
	err := r.db.GetContext(ctx, &last, query, escapeLike(prefix)+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return formatTrackingCode(prefix, 1), nil
		}
		return "", fmt.Errorf("select last tracking code: %w", err)
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil {
		return "", fmt.Errorf("parse tracking code %q: %w", last, err)
	}
	return formatTrackingCode(prefix, seq+1), nil
}

func formatTrackingCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

func escapeLike(raw string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(raw)
}

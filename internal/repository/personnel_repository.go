package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/plant-shift-api/internal/models"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
)

// PersonnelRepository reads the plant roster.
type PersonnelRepository struct {
	db *sqlx.DB
}

// NewPersonnelRepository constructs the repository.
func NewPersonnelRepository(db *sqlx.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// List returns roster entries matching filter ordered by name.
func (r *PersonnelRepository) List(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 2)
	argPos := 1

	if filter.Crew != nil {
		conditions = append(conditions, fmt.Sprintf("crew = $%d", argPos))
		args = append(args, string(*filter.Crew))
		argPos++
	}
	if filter.EligibleOnly {
		conditions = append(conditions, "eligible = TRUE")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", argPos))
		args = append(args, "%"+search+"%")
	}

	query := "SELECT id, full_name, position, crew, eligible, created_at FROM personnel"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY full_name ASC"

	var people []models.Personnel
	if err := r.db.SelectContext(ctx, &people, query, args...); err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	return people, nil
}

// GetByID returns one roster entry.
func (r *PersonnelRepository) GetByID(ctx context.Context, id string) (*models.Personnel, error) {
	const query = `SELECT id, full_name, position, crew, eligible, created_at FROM personnel WHERE id = $1`
	var person models.Personnel
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("personnel %s not found", id))
		}
		return nil, fmt.Errorf("get personnel: %w", err)
	}
	return &person, nil
}

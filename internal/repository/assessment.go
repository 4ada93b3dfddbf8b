package repository

import (
	"context"
	"fmt"

	"github.com/everkeep/everkeep/internal/model"
)

// ListAssessmentTypes returns the fixed lookup rows seeded by migration.
func (r *Repository) ListAssessmentTypes(ctx context.Context) ([]*model.AssessmentType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM assessment_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment types: %w", err)
	}
	defer rows.Close()

	var types []*model.AssessmentType
	for rows.Next() {
		var t model.AssessmentType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan assessment type: %w", err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment types: %w", err)
	}

	return types, nil
}

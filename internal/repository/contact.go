package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
)

// ErrContactNotFound is returned when an emergency contact does not exist.
var ErrContactNotFound = errors.New("emergency contact not found")

// contactSortable lists the columns list calls may sort by.
var contactSortable = map[string]bool{
	"id":         true,
	"full_name":  true,
	"priority":   true,
	"created_at": true,
}

// CreateContact inserts a new emergency contact.
func (r *Repository) CreateContact(ctx context.Context, c *model.EmergencyContact) error {
	query := `
		INSERT INTO emergency_contacts (id, user_id, full_name, phone, email, relationship, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.FullName, c.Phone, c.Email, c.Relationship, c.Priority, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetContact retrieves one contact belonging to a user.
func (r *Repository) GetContact(ctx context.Context, userID, id string) (*model.EmergencyContact, error) {
	query := `
		SELECT id, user_id, full_name, phone, email, relationship, priority, created_at, updated_at
		FROM emergency_contacts
		WHERE id = $1 AND user_id = $2
	`

	c, err := scanContact(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// ListContacts returns the sorted page window of a user's contacts
// plus the total un-windowed count.
func (r *Repository) ListContacts(ctx context.Context, userID string, p pagination.Params) ([]*model.EmergencyContact, int, error) {
	orderBy, err := p.OrderBy(contactSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM emergency_contacts WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	query := `
		SELECT id, user_id, full_name, phone, email, relationship, priority, created_at, updated_at
		FROM emergency_contacts
		WHERE user_id = $1
	` + orderBy
	args := []any{userID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*model.EmergencyContact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, total, nil
}

// UpdateContact updates a contact's mutable fields.
func (r *Repository) UpdateContact(ctx context.Context, c *model.EmergencyContact) error {
	query := `
		UPDATE emergency_contacts
		SET full_name = $3, phone = $4, email = $5, relationship = $6, priority = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.FullName, c.Phone, c.Email, c.Relationship, c.Priority,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrContactNotFound
	}

	return nil
}

// DeleteContact removes a contact belonging to a user.
func (r *Repository) DeleteContact(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM emergency_contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*model.EmergencyContact, error) {
	var c model.EmergencyContact
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FullName,
		&c.Phone,
		&c.Email,
		&c.Relationship,
		&c.Priority,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

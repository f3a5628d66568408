package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avery/copydesk/internal/types"
)

// CreatePersona creates a persona in a project and returns its ID
func (db *DB) CreatePersona(ctx context.Context, projectID uuid.UUID, p *types.Persona) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO personas
		   (project_id, name, photo_url, demographics, psychographics, pain_points, language_patterns, goals)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		projectID, p.Name, p.PhotoURL, p.Demographics, p.Psychographics,
		p.PainPoints, p.LanguagePatterns, p.Goals,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create persona: %w", err)
	}
	return id, nil
}

// GetPersona retrieves a persona by ID. Returns nil, nil if not found.
func (db *DB) GetPersona(ctx context.Context, personaID uuid.UUID) (*types.Persona, error) {
	var p types.Persona
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, name, photo_url, demographics, psychographics,
		        pain_points, language_patterns, goals, created_at, updated_at
		 FROM personas WHERE id = $1`,
		personaID,
	).Scan(&p.ID, &p.ProjectID, &p.Name, &p.PhotoURL, &p.Demographics, &p.Psychographics,
		&p.PainPoints, &p.LanguagePatterns, &p.Goals, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get persona: %w", err)
	}
	return &p, nil
}

// GetProjectPersonas retrieves a project's personas, oldest first
func (db *DB) GetProjectPersonas(ctx context.Context, projectID uuid.UUID) ([]types.Persona, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, name, photo_url, demographics, psychographics,
		        pain_points, language_patterns, goals, created_at, updated_at
		 FROM personas WHERE project_id = $1 ORDER BY created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	var personas []types.Persona
	for rows.Next() {
		var p types.Persona
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Name, &p.PhotoURL, &p.Demographics, &p.Psychographics,
			&p.PainPoints, &p.LanguagePatterns, &p.Goals, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, nil
}

// UpdatePersona replaces a persona's fields
func (db *DB) UpdatePersona(ctx context.Context, p *types.Persona) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE personas
		 SET name = $1, photo_url = $2, demographics = $3, psychographics = $4,
		     pain_points = $5, language_patterns = $6, goals = $7, updated_at = NOW()
		 WHERE id = $8`,
		p.Name, p.PhotoURL, p.Demographics, p.Psychographics,
		p.PainPoints, p.LanguagePatterns, p.Goals, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update persona: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("persona not found: %s", p.ID)
	}
	return nil
}

// DeletePersona removes a persona by ID
func (db *DB) DeletePersona(ctx context.Context, personaID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM personas WHERE id = $1`, personaID)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("persona not found: %s", personaID)
	}
	return nil
}

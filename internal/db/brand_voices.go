package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avery/copydesk/internal/types"
)

// SaveBrandVoiceToProject inserts a project's brand voice. Each project
// holds at most one; a second insert surfaces ErrUniqueViolation, which the
// API maps to HTTP 409.
func (db *DB) SaveBrandVoiceToProject(ctx context.Context, projectID uuid.UUID, voice *types.BrandVoice) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO brand_voices
		   (project_id, brand_name, tone, approved_phrases, forbidden_words, brand_values, mission_statement)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		projectID, voice.BrandName, voice.Tone, voice.ApprovedPhrases,
		voice.ForbiddenWords, voice.Values, voice.MissionStatement,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("project already has a brand voice: %w", ErrUniqueViolation)
		}
		return uuid.Nil, fmt.Errorf("failed to save brand voice: %w", err)
	}
	return id, nil
}

// GetProjectBrandVoice retrieves the brand voice for a project. Returns
// nil, nil if the project has none.
func (db *DB) GetProjectBrandVoice(ctx context.Context, projectID uuid.UUID) (*types.BrandVoice, error) {
	var v types.BrandVoice
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, brand_name, tone, approved_phrases, forbidden_words,
		        brand_values, mission_statement, saved_at
		 FROM brand_voices WHERE project_id = $1`,
		projectID,
	).Scan(&v.ID, &v.ProjectID, &v.BrandName, &v.Tone, &v.ApprovedPhrases,
		&v.ForbiddenWords, &v.Values, &v.MissionStatement, &v.SavedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brand voice: %w", err)
	}
	return &v, nil
}

// UpdateBrandVoice replaces an existing brand voice's fields
func (db *DB) UpdateBrandVoice(ctx context.Context, voice *types.BrandVoice) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE brand_voices
		 SET brand_name = $1, tone = $2, approved_phrases = $3, forbidden_words = $4,
		     brand_values = $5, mission_statement = $6, saved_at = NOW()
		 WHERE id = $7`,
		voice.BrandName, voice.Tone, voice.ApprovedPhrases, voice.ForbiddenWords,
		voice.Values, voice.MissionStatement, voice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update brand voice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("brand voice not found: %s", voice.ID)
	}
	return nil
}

// DeleteBrandVoice removes a brand voice by ID
func (db *DB) DeleteBrandVoice(ctx context.Context, voiceID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM brand_voices WHERE id = $1`, voiceID)
	if err != nil {
		return fmt.Errorf("failed to delete brand voice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("brand voice not found: %s", voiceID)
	}
	return nil
}

// ListAllBrandVoices retrieves every brand voice, newest first
func (db *DB) ListAllBrandVoices(ctx context.Context) ([]types.BrandVoice, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, brand_name, tone, approved_phrases, forbidden_words,
		        brand_values, mission_statement, saved_at
		 FROM brand_voices ORDER BY saved_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand voices: %w", err)
	}
	defer rows.Close()

	var voices []types.BrandVoice
	for rows.Next() {
		var v types.BrandVoice
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.BrandName, &v.Tone, &v.ApprovedPhrases,
			&v.ForbiddenWords, &v.Values, &v.MissionStatement, &v.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand voice: %w", err)
		}
		voices = append(voices, v)
	}
	return voices, nil
}

// RunBrandVoiceMigration enforces one-brand-voice-per-project at the schema
// level. Older deployments created brand_voices without the unique
// constraint; a 409 from the CRUD endpoints signals the client to call this.
func (db *DB) RunBrandVoiceMigration(ctx context.Context) error {
	// Keep the newest row per project before adding the constraint.
	_, err := db.pool.Exec(ctx,
		`DELETE FROM brand_voices a USING brand_voices b
		 WHERE a.project_id = b.project_id AND a.saved_at < b.saved_at`)
	if err != nil {
		return fmt.Errorf("failed to deduplicate brand voices: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`DO $$
		 BEGIN
		   IF NOT EXISTS (
		     SELECT 1 FROM pg_constraint WHERE conname = 'brand_voices_project_id_key'
		   ) THEN
		     ALTER TABLE brand_voices ADD CONSTRAINT brand_voices_project_id_key UNIQUE (project_id);
		   END IF;
		 END $$`)
	if err != nil {
		return fmt.Errorf("failed to add brand voice uniqueness constraint: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateSnippet saves a block of copy to a project and returns its ID
func (db *DB) CreateSnippet(ctx context.Context, projectID uuid.UUID, title, content string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO snippets (project_id, title, content) VALUES ($1, $2, $3) RETURNING id`,
		projectID, title, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create snippet: %w", err)
	}
	return id, nil
}

// ListSnippets retrieves a project's snippets, newest first
func (db *DB) ListSnippets(ctx context.Context, projectID uuid.UUID) ([]Snippet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, title, content, created_at
		 FROM snippets WHERE project_id = $1 ORDER BY created_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer rows.Close()

	var snippets []Snippet
	for rows.Next() {
		var s Snippet
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snippet: %w", err)
		}
		snippets = append(snippets, s)
	}
	return snippets, nil
}

// DeleteSnippet removes a snippet by ID
func (db *DB) DeleteSnippet(ctx context.Context, snippetID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, snippetID)
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("snippet not found: %s", snippetID)
	}
	return nil
}

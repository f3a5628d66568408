package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateDocument creates a document in a project and returns its ID
func (db *DB) CreateDocument(ctx context.Context, projectID uuid.UUID, title, content string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (project_id, title, content) VALUES ($1, $2, $3) RETURNING id`,
		projectID, title, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a document by ID. Returns nil, nil if not found.
func (db *DB) GetDocument(ctx context.Context, docID uuid.UUID) (*Document, error) {
	var d Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, title, content, created_at, updated_at
		 FROM documents WHERE id = $1`,
		docID,
	).Scan(&d.ID, &d.ProjectID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}

// GetDocumentContent retrieves just a document's content
func (db *DB) GetDocumentContent(ctx context.Context, docID uuid.UUID) (string, error) {
	var content string
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM documents WHERE id = $1`, docID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", fmt.Errorf("document not found: %s", docID)
		}
		return "", fmt.Errorf("failed to get document content: %w", err)
	}
	return content, nil
}

// UpdateDocument updates a document's title and content
func (db *DB) UpdateDocument(ctx context.Context, doc *Document) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE documents SET title = $1, content = $2, updated_at = NOW() WHERE id = $3`,
		doc.Title, doc.Content, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", doc.ID)
	}
	return nil
}

// UpdateDocumentContent replaces a document's content only
func (db *DB) UpdateDocumentContent(ctx context.Context, docID uuid.UUID, content string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE documents SET content = $1, updated_at = NOW() WHERE id = $2`,
		content, docID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", docID)
	}
	return nil
}

// ListDocuments retrieves a project's documents, most recently updated first
func (db *DB) ListDocuments(ctx context.Context, projectID uuid.UUID) ([]Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, title, content, created_at, updated_at
		 FROM documents WHERE project_id = $1 ORDER BY updated_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// DeleteDocument removes a document and its versions (cascades in schema)
func (db *DB) DeleteDocument(ctx context.Context, docID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, docID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", docID)
	}
	return nil
}

// CreateDocumentVersion appends a content snapshot for a document. Versions
// are append-only; nothing updates or deletes them individually.
func (db *DB) CreateDocumentVersion(ctx context.Context, docID uuid.UUID, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO document_versions (document_id, content) VALUES ($1, $2)`,
		docID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to create document version: %w", err)
	}
	return nil
}

// ListDocumentVersions retrieves a document's snapshots, newest first
func (db *DB) ListDocumentVersions(ctx context.Context, docID uuid.UUID) ([]DocumentVersion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, document_id, content, created_at
		 FROM document_versions WHERE document_id = $1 ORDER BY created_at DESC`,
		docID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}
	defer rows.Close()

	var versions []DocumentVersion
	for rows.Next() {
		var v DocumentVersion
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.Content, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, nil
}

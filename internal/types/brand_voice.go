// Package types provides type definitions for structured data used throughout the copydesk system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// BrandVoice represents a project-scoped set of tone and vocabulary constraints
// applied to generation and alignment scoring. At most one brand voice exists
// per project.
type BrandVoice struct {
	ID               uuid.UUID `json:"id,omitempty"`
	ProjectID        uuid.UUID `json:"project_id,omitempty"`
	BrandName        string    `json:"brand_name"`
	Tone             string    `json:"tone"`
	ApprovedPhrases  []string  `json:"approved_phrases"`
	ForbiddenWords   []string  `json:"forbidden_words"`
	Values           []string  `json:"values"`
	MissionStatement string    `json:"mission_statement"`
	SavedAt          time.Time `json:"saved_at,omitempty"`
}

// BrandVoiceDraft is a brand voice proposal produced by the website import
// flow. It is returned to the caller for review and is not persisted until
// explicitly saved.
type BrandVoiceDraft struct {
	BrandVoice
	SourceURL string   `json:"source_url"`
	Evidence  []string `json:"evidence,omitempty"`
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// Persona represents a project-scoped audience profile used to target
// generation and alignment at audience resonance rather than brand
// consistency. A project may own many personas.
type Persona struct {
	ID               uuid.UUID `json:"id,omitempty"`
	ProjectID        uuid.UUID `json:"project_id,omitempty"`
	Name             string    `json:"name"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	Demographics     string    `json:"demographics"`
	Psychographics   string    `json:"psychographics"`
	PainPoints       []string  `json:"pain_points"`
	LanguagePatterns []string  `json:"language_patterns"`
	Goals            []string  `json:"goals"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

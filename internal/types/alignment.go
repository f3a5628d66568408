package types

// AlignmentType identifies which kind of target an alignment was scored
// against.
type AlignmentType string

// Alignment target kinds.
const (
	AlignmentBrand   AlignmentType = "brand"
	AlignmentPersona AlignmentType = "persona"
)

// AlignmentResult holds a scored comparison of a text sample against a brand
// voice or persona, with categorized feedback lists.
//
// AnalyzedText always carries the literal text the score was computed from,
// so an optimize action can operate on it even after the editor selection
// has moved on.
type AlignmentResult struct {
	Score      int           `json:"score"`
	Label      string        `json:"label"`
	Assessment string        `json:"assessment"`
	Type       AlignmentType `json:"type"`
	TargetName string        `json:"target_name"`

	// Brand alignment feedback.
	Matches    []string `json:"matches,omitempty"`
	Violations []string `json:"violations,omitempty"`

	// Persona alignment feedback.
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`

	// Shared.
	Recommendations []string `json:"recommendations"`

	AnalyzedText string `json:"analyzed_text"`
}

// OptimizeResult holds a rewritten version of previously analyzed text,
// produced from an AlignmentResult. It is ephemeral: accepting it writes the
// rewrite into document storage and discards the result.
type OptimizeResult struct {
	OptimizedCopy string        `json:"optimized_copy"`
	Changes       []string      `json:"changes"`
	TargetName    string        `json:"target_name"`
	TargetType    AlignmentType `json:"target_type"`
	OriginalText  string        `json:"original_text"`
}

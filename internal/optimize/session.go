package optimize

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/avery/copydesk/internal/types"
)

// State is a phase of the compare workflow.
type State string

// Workflow states.
const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateResultReady State = "result_ready"
	StateAccepted    State = "accepted"
	StateRejected    State = "rejected"
)

// Range is a selection range within a document, matching the editor's
// {from, to} offsets.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DocumentStore is the slice of persistence the workflow needs. Snapshot
// failures are tolerated; content replacement failures are not.
type DocumentStore interface {
	GetDocumentContent(ctx context.Context, docID uuid.UUID) (string, error)
	UpdateDocumentContent(ctx context.Context, docID uuid.UUID, content string) error
	CreateDocumentVersion(ctx context.Context, docID uuid.UUID, content string) error
}

// StateError reports an operation attempted in the wrong workflow state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in state %q", e.Op, e.State)
}

// Session tracks one optimize-and-compare interaction over a document. All
// methods are safe for concurrent use; the UI funnels one user's actions
// through a single session.
type Session struct {
	mu sync.Mutex

	state   State
	editing bool
	result  *types.OptimizeResult

	docID     uuid.UUID
	selection Range
	store     DocumentStore
}

// NewSession creates an idle session bound to a document and the selection
// range the analyzed text came from.
func NewSession(store DocumentStore, docID uuid.UUID, selection Range) *Session {
	return &Session{
		state:     StateIdle,
		store:     store,
		docID:     docID,
		selection: selection,
	}
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the pending result, or nil outside result_ready.
func (s *Session) Result() *types.OptimizeResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Editing reports whether the edit toggle is on.
func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// Begin moves idle → loading. It fails if a result is already pending.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle && s.state != StateAccepted && s.state != StateRejected {
		return &StateError{Op: "begin optimize", State: s.state}
	}
	s.state = StateLoading
	s.editing = false
	s.result = nil
	return nil
}

// Fail returns a loading session to idle after an upstream error.
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		s.state = StateIdle
	}
}

// Deliver moves loading → result_ready with the rewrite to compare.
func (s *Session) Deliver(result *types.OptimizeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		return &StateError{Op: "deliver result", State: s.state}
	}
	s.result = result
	s.state = StateResultReady
	return nil
}

// ToggleEditing flips the edit mode while a result is pending.
func (s *Session) ToggleEditing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResultReady {
		return &StateError{Op: "toggle editing", State: s.state}
	}
	s.editing = !s.editing
	return nil
}

// Accept commits the rewrite into the document at the session's selection
// range. When edited is non-nil (the user modified the preview) the edited
// text is committed instead of the server rewrite. The current content is
// snapshotted as a version first; snapshot failure is logged and does not
// block the replacement. The pending result is cleared on success.
func (s *Session) Accept(ctx context.Context, edited *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResultReady {
		return &StateError{Op: "accept result", State: s.state}
	}

	replacement := s.result.OptimizedCopy
	if edited != nil {
		replacement = *edited
	}

	content, err := s.store.GetDocumentContent(ctx, s.docID)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	// Best-effort version snapshot before the content changes.
	if err := s.store.CreateDocumentVersion(ctx, s.docID, content); err != nil {
		log.Printf("[optimize] version snapshot failed for document %s: %v", s.docID, err)
	}

	updated := replaceRange(content, s.selection, replacement)
	if err := s.store.UpdateDocumentContent(ctx, s.docID, updated); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	s.result = nil
	s.editing = false
	s.state = StateAccepted
	return nil
}

// Reject discards the pending result and leaves the document untouched.
func (s *Session) Reject() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResultReady {
		return &StateError{Op: "reject result", State: s.state}
	}
	s.result = nil
	s.editing = false
	s.state = StateRejected
	return nil
}

// replaceRange splices replacement over [from, to) of content, clamping
// out-of-bounds offsets rather than failing: the editor may have shrunk the
// document since the range was captured.
func replaceRange(content string, r Range, replacement string) string {
	from, to := r.From, r.To
	if from < 0 {
		from = 0
	}
	if from > len(content) {
		from = len(content)
	}
	if to < from {
		to = from
	}
	if to > len(content) {
		to = len(content)
	}
	return content[:from] + replacement + content[to:]
}

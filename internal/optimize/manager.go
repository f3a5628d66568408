package optimize

import (
	"sync"

	"github.com/google/uuid"
)

// SessionManager holds the server's live compare sessions, keyed by a
// generated session ID. Sessions are in-memory only; a restart discards
// them, which is safe because accepting a result is the only step that
// touches storage.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	store    DocumentStore
}

// NewSessionManager creates an empty manager backed by the given store.
func NewSessionManager(store DocumentStore) *SessionManager {
	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
		store:    store,
	}
}

// Create registers a new session over a document selection and returns its ID.
func (m *SessionManager) Create(docID uuid.UUID, selection Range) (uuid.UUID, *Session) {
	id := uuid.New()
	session := NewSession(m.store, docID, selection)

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return id, session
}

// Get returns the session for id, or nil when the ID is unknown.
func (m *SessionManager) Get(id uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Delete drops a session. Unknown IDs are a no-op.
func (m *SessionManager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/optimize"
)

// fakeDocStore is an in-memory optimize.DocumentStore.
type fakeDocStore struct {
	mu       sync.Mutex
	content  map[uuid.UUID]string
	versions map[uuid.UUID][]string

	updateErr error
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{
		content:  make(map[uuid.UUID]string),
		versions: make(map[uuid.UUID][]string),
	}
}

func (f *fakeDocStore) GetDocumentContent(_ context.Context, docID uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.content[docID]
	if !ok {
		return "", fmt.Errorf("document %s not found", docID)
	}
	return content, nil
}

func (f *fakeDocStore) UpdateDocumentContent(_ context.Context, docID uuid.UUID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.content[docID] = content
	return nil
}

func (f *fakeDocStore) CreateDocumentVersion(_ context.Context, docID uuid.UUID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versions[docID] = append(f.versions[docID], content)
	return nil
}

const optimizedResponse = `{
	"optimized_copy": "Deploys stay boring.",
	"changes": ["Tightened the phrasing."]
}`

func sessionAlignmentBody(docID uuid.UUID) map[string]any {
	return map[string]any{
		"documentId": docID.String(),
		"selection":  map[string]int{"from": 6, "to": 26},
		"alignment": map[string]any{
			"score":           55,
			"assessment":      "Off voice.",
			"type":            "brand",
			"target_name":     "Acme",
			"recommendations": []string{"Lead with the mission."},
			"analyzed_text":   "Deploys are handled.",
		},
		"brandVoice": map[string]any{"brand_name": "Acme", "tone": "confident"},
	}
}

// newSessionTestServer wires the handler around a fake document store seeded
// with one document, returning the store and the document's ID.
func newSessionTestServer(mock *llm.MockClient) (*Server, *fakeDocStore, uuid.UUID) {
	s := newTestServer(mock)
	store := newFakeDocStore()
	s.sessions = optimize.NewSessionManager(store)

	docID := uuid.New()
	store.content[docID] = "Note: Deploys are handled. More below."
	return s, store, docID
}

func createSession(t *testing.T, s *Server, docID uuid.UUID) string {
	t.Helper()

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions", sessionAlignmentBody(docID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "result_ready", resp["state"])
	require.NotEmpty(t, resp["sessionId"])
	return resp["sessionId"].(string)
}

func TestOptimizeSessionAcceptReplacesSelection(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{optimizedResponse}}
	s, store, docID := newSessionTestServer(mock)

	id := createSession(t, s, docID)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/accept", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["state"])
	assert.Nil(t, resp["result"])

	// The rewrite landed inside the selection range, and the previous content
	// was snapshotted as a version first.
	assert.Equal(t, "Note: Deploys stay boring. More below.", store.content[docID])
	require.Len(t, store.versions[docID], 1)
	assert.Equal(t, "Note: Deploys are handled. More below.", store.versions[docID][0])
}

func TestOptimizeSessionAcceptWithEditedCopy(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{optimizedResponse}}
	s, store, docID := newSessionTestServer(mock)

	id := createSession(t, s, docID)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/accept", map[string]any{
		"editedCopy": "Deploys stay boring, always.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "Note: Deploys stay boring, always. More below.", store.content[docID])
}

func TestOptimizeSessionReject(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{optimizedResponse}}
	s, store, docID := newSessionTestServer(mock)
	original := store.content[docID]

	id := createSession(t, s, docID)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/reject", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rejected", resp["state"])

	// The document is untouched and no version was taken.
	assert.Equal(t, original, store.content[docID])
	assert.Empty(t, store.versions[docID])
}

func TestOptimizeSessionEditingToggle(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{optimizedResponse}}
	s, _, docID := newSessionTestServer(mock)

	id := createSession(t, s, docID)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/editing", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["editing"])

	w = doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/editing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["editing"])
}

func TestOptimizeSessionGet(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{optimizedResponse}}
	s, _, docID := newSessionTestServer(mock)

	id := createSession(t, s, docID)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/optimize-sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "result_ready", resp["state"])

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "expected pending result in response")
	assert.Equal(t, "Deploys stay boring.", result["optimized_copy"])
	assert.Equal(t, "Deploys are handled.", result["original_text"])
}

func TestOptimizeSessionDoubleAcceptConflicts(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{optimizedResponse}}
	s, _, docID := newSessionTestServer(mock)

	id := createSession(t, s, docID)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/accept", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions/"+id+"/accept", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOptimizeSessionUnknownID(t *testing.T) {
	s, _, _ := newSessionTestServer(&llm.MockClient{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/optimize-sessions/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s.Handler(), http.MethodGet, "/api/optimize-sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOptimizeSessionValidation(t *testing.T) {
	s, _, docID := newSessionTestServer(&llm.MockClient{})

	t.Run("invalid document id", func(t *testing.T) {
		body := sessionAlignmentBody(docID)
		body["documentId"] = "not-a-uuid"
		w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing alignment", func(t *testing.T) {
		body := sessionAlignmentBody(docID)
		delete(body, "alignment")
		w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateOptimizeSessionUpstreamFailure(t *testing.T) {
	mock := &llm.MockClient{Err: assert.AnError}
	s, _, docID := newSessionTestServer(mock)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/optimize-sessions", sessionAlignmentBody(docID))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

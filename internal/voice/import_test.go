package voice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avery/copydesk/internal/llm"
)

const validDraftJSON = `{
	"brand_name": "Acme",
	"tone": "confident, plainspoken",
	"approved_phrases": ["deploys made boring"],
	"forbidden_words": ["synergy"],
	"values": ["reliability"],
	"mission_statement": "We make deploys boring.",
	"evidence": ["Reliability is our whole personality."]
}`

func TestFromCorpus(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{validDraftJSON}}
	importer := NewImporter(mock)

	draft, err := importer.FromCorpus(context.Background(), "https://acme.example", "Reliability is our whole personality.")
	require.NoError(t, err)

	assert.Equal(t, "Acme", draft.BrandName)
	assert.Equal(t, "confident, plainspoken", draft.Tone)
	assert.Equal(t, []string{"synergy"}, draft.ForbiddenWords)
	assert.Equal(t, "https://acme.example", draft.SourceURL)
	assert.Equal(t, []string{"Reliability is our whole personality."}, draft.Evidence)

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "https://acme.example")
	assert.Contains(t, mock.Prompts[0], "Reliability is our whole personality.")
}

func TestFromCorpusAcceptsFencedJSON(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"```json\n" + validDraftJSON + "\n```"}}
	importer := NewImporter(mock)

	draft, err := importer.FromCorpus(context.Background(), "https://acme.example", "corpus")
	require.NoError(t, err)
	assert.Equal(t, "Acme", draft.BrandName)
}

func TestFromCorpusMalformedDraft(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "sorry, I cannot help with that"},
		{"missing brand name", `{"tone": "warm"}`},
		{"empty tone", `{"brand_name": "Acme", "tone": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &llm.MockClient{Responses: []string{tt.response}}
			importer := NewImporter(mock)

			_, err := importer.FromCorpus(context.Background(), "https://acme.example", "corpus")
			require.Error(t, err)

			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Contains(t, importErr.Message, "malformed")
		})
	}
}

func TestFromCorpusUpstreamError(t *testing.T) {
	upstream := errors.New("quota exhausted")
	mock := &llm.MockClient{Err: upstream}
	importer := NewImporter(mock)

	_, err := importer.FromCorpus(context.Background(), "https://acme.example", "corpus")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
}

func TestFromURLRejectsUnfetchablePage(t *testing.T) {
	importer := NewImporter(&llm.MockClient{Responses: []string{validDraftJSON}})

	_, err := importer.FromURL(context.Background(), "http://127.0.0.1:1/nope", nil)
	require.Error(t, err)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Contains(t, importErr.Message, "failed to fetch page")
}

func TestFromURLTruncatesOversizedCorpus(t *testing.T) {
	page := "<html><body><main>" + strings.Repeat("brand copy ", maxCorpusChars/10) + "</main></body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	mock := &llm.MockClient{Responses: []string{validDraftJSON}}
	importer := NewImporter(mock)

	draft, err := importer.FromURL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, draft.SourceURL)

	require.Len(t, mock.Prompts, 1)
	assert.LessOrEqual(t, len(mock.Prompts[0]), maxCorpusChars+2000)
}

func TestTruncateCorpusKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"under cap untouched", "héllo", 10, "héllo"},
		{"ascii cut at cap", "abcdef", 4, "abcd"},
		{"cut lands mid-rune", "abécd", 3, "ab"},
		{"cut lands on rune start", "abécd", 4, "abé"},
		{"four-byte rune straddles cap", "a\U0001F600b", 3, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateCorpus(tt.text, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

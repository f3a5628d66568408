package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><main>Brand copy here</main></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Brand copy here")
	assert.Contains(t, result.ContentType, "text/html")
}

func TestURLNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
	// The partial result is still returned for diagnostics.
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURLInvalid(t *testing.T) {
	tests := []string{"", "not a url", "/relative/path"}
	for _, bad := range tests {
		_, err := URL(context.Background(), bad, nil)
		assert.Error(t, err, bad)
	}
}

func TestExtractMainText(t *testing.T) {
	html := `<html><body>
		<nav>Home | About | Pricing</nav>
		<main>
			<h1>We make deploys boring</h1>
			<p>Reliability is our whole personality.</p>
		</main>
		<script>analytics()</script>
		<footer>© Acme</footer>
	</body></html>`

	text, err := ExtractMainText(html, BrandPageSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "We make deploys boring")
	assert.Contains(t, text, "Reliability is our whole personality.")
	assert.NotContains(t, text, "Home | About")
	assert.NotContains(t, text, "analytics")
	assert.NotContains(t, text, "© Acme")
}

func TestExtractMainTextFallsBackToBody(t *testing.T) {
	html := `<html><body><p>No main element anywhere.</p></body></html>`

	text, err := ExtractMainText(html, BrandPageSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "No main element anywhere.")
}

func TestCleanWhitespace(t *testing.T) {
	in := "  first line  \n\n\n   second line\t\n   \n"
	assert.Equal(t, "first line\nsecond line", cleanWhitespace(in))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("thin shell"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("real content ", 100)))
}

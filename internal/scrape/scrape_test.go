package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const careersHTML = `<!DOCTYPE html>
<html>
<head><title>Careers</title><style>body { color: red; }</style></head>
<body>
<nav>Home | About | Careers</nav>
<header>Acme Robotics</header>
<main>
  <h1>Open   Positions</h1>
  <p>We are hiring a Senior Backend Engineer.</p>
  <script>trackPageView();</script>
  <p>Python and AWS experience required.</p>
</main>
<footer>Copyright Acme</footer>
</body>
</html>`

func TestPage_ExtractsMainContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(careersHTML))
	}))
	defer srv.Close()

	result, err := Page(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.Text, "Open Positions")
	assert.Contains(t, result.Text, "Senior Backend Engineer")
	assert.Contains(t, result.Text, "Python and AWS")

	assert.NotContains(t, result.Text, "Home | About")
	assert.NotContains(t, result.Text, "Copyright Acme")
	assert.NotContains(t, result.Text, "trackPageView")
	assert.NotContains(t, result.Text, "color: red")
}

func TestPage_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><main>ok</main></body></html>"))
	}))
	defer srv.Close()

	_, err := Page(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestPage_CustomHeaders(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Custom")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.Headers = map[string]string{"X-Custom": "value"}
	_, err := Page(context.Background(), srv.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, "value", gotHeader)
}

func TestPage_InvalidURL(t *testing.T) {
	_, err := Page(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var scrapeErr *Error
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "invalid URL", scrapeErr.Message)
}

func TestPage_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := Page(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestPage_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("<html><body>slow</body></html>"))
	}))
	defer srv.Close()

	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond
	_, err := Page(context.Background(), srv.URL, opts)
	require.Error(t, err)

	var scrapeErr *Error
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "HTTP request failed", scrapeErr.Message)
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><div>Plain page content</div></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Plain page content", text)
}

func TestExtractMainText_CollapsesWhitespace(t *testing.T) {
	html := "<html><body><main><p>first   line</p>\n\n\n\n<p>second\tline</p></main></body></html>"
	text, err := ExtractMainText(html)
	require.NoError(t, err)

	assert.Contains(t, text, "first line")
	assert.Contains(t, text, "second line")
	assert.NotContains(t, text, "\n\n\n")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("   \n  "))
	assert.True(t, ShouldUseBrowser("thin SPA shell"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("substantial content ", 50)))
}

func TestError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &Error{URL: "http://example.com", Message: "HTTP request failed", Cause: cause}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "http://example.com")
}

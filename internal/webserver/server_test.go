package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCrew returns canned markdown or an error.
type fakeCrew struct {
	markdown  string
	err       error
	questions []string
}

func (f *fakeCrew) Kickoff(_ context.Context, question string) (string, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return "", f.err
	}
	return f.markdown, nil
}

func newTestServer(t *testing.T, crew QuestionRunner) http.Handler {
	t.Helper()
	srv, err := New(Config{Crew: crew})
	require.NoError(t, err)
	return srv.Handler()
}

func postQuestion(handler http.Handler, question string) *httptest.ResponseRecorder {
	form := url.Values{"query": {question}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexShowsForm(t *testing.T) {
	handler := newTestServer(t, &fakeCrew{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")
	assert.Contains(t, rec.Body.String(), `name="query"`)
}

func TestAskRendersReport(t *testing.T) {
	crew := &fakeCrew{markdown: "# Revenue Report\n\nTotal revenue was **777613**."}
	handler := newTestServer(t, crew)

	rec := postQuestion(handler, "What was the total revenue?")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Revenue Report")
	assert.Contains(t, body, "<strong>777613</strong>")
	assert.Contains(t, body, "What was the total revenue?")
	assert.Equal(t, []string{"What was the total revenue?"}, crew.questions)
}

func TestAskEmptyQuestion(t *testing.T) {
	crew := &fakeCrew{markdown: "unused"}
	handler := newTestServer(t, crew)

	rec := postQuestion(handler, "   ")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a question.")
	// The pipeline never ran.
	assert.Empty(t, crew.questions)
}

func TestAskPipelineFailure(t *testing.T) {
	crew := &fakeCrew{err: assert.AnError}
	handler := newTestServer(t, crew)

	rec := postQuestion(handler, "What was the total revenue?")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.Contains(t, rec.Body.String(), "Request ID:")
}

func TestAskEscapesModelHTML(t *testing.T) {
	crew := &fakeCrew{markdown: "hello <script>alert(1)</script>"}
	handler := newTestServer(t, crew)

	rec := postQuestion(handler, "inject?")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t, &fakeCrew{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestNewRequiresCrew(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

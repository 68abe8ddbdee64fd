package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqmap/pkg/cache"
	"github.com/matzehuels/seqmap/pkg/pipeline"
	"github.com/matzehuels/seqmap/pkg/render/sink"
)

const testDocument = `{
  "name": "pDemo",
  "circular": true,
  "sequence": "ATGCATGCATGCATGCATGCATGCATGCATGCATGCATGC",
  "annotations": [
    {"id": "a", "name": "alpha", "type": "CDS", "span": "2..20"},
    {"id": "b", "name": "beta", "type": "promoter", "location": "complement(25..30)"}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = runner.Close()
	})
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return data
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Version)
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)
	body := `{"document": ` + testDocument + `}`

	resp := post(t, srv, "/v1/layout", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Seqmap-Cache"))

	m, err := sink.ReadJSON(readAll(t, resp))
	require.NoError(t, err)
	assert.Equal(t, sink.ViewCircular, m.View)
	require.NotNil(t, m.Circular)
	assert.Len(t, m.Circular.Arcs, 2)

	again := post(t, srv, "/v1/layout", body)
	require.Equal(t, http.StatusOK, again.StatusCode)
	assert.Equal(t, "hit", again.Header.Get("X-Seqmap-Cache"))
}

func TestLayoutLinearOptions(t *testing.T) {
	srv := newTestServer(t)
	body := `{"document": ` + testDocument + `, "options": {"view": "linear", "linear": {"zoom": 10}}}`

	resp := post(t, srv, "/v1/layout", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m, err := sink.ReadJSON(readAll(t, resp))
	require.NoError(t, err)
	require.NotNil(t, m.Linear)
	assert.Len(t, m.Linear.Lines, 4)
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/v1/render", `{"document": `+testDocument+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("<svg")))

	resp = post(t, srv, "/v1/render", `{"document": `+testDocument+`, "format": "png", "options": {"scale": 1}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(readAll(t, resp), []byte("\x89PNG")))
}

func TestEdit(t *testing.T) {
	srv := newTestServer(t)
	body := `{"document": ` + testDocument + `, "edits": [{"kind": "insert", "position": 0, "text": "GGGG"}]}`

	resp := post(t, srv, "/v1/edit", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := pipeline.Decode(readAll(t, resp), "json")
	require.NoError(t, err)
	assert.Equal(t, 44, doc.Len())
	a, ok := doc.Annotations.Get("a")
	require.True(t, ok)
	assert.Equal(t, "6..24", a.Span.String())
}

func TestNotation(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/v1/notation", `{"text": "0..10 + (20..30)"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out notationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "join(1..10,complement(21..30))", out.Text)
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed body", "/v1/layout", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing document", "/v1/layout", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad sequence", "/v1/layout", `{"document": {"name": "x", "sequence": "ATGQ"}}`, http.StatusBadRequest, ""},
		{"bad view", "/v1/layout", `{"document": ` + testDocument + `, "options": {"view": "radial"}}`, http.StatusBadRequest, "INVALID_VIEW"},
		{"bad format", "/v1/render", `{"document": ` + testDocument + `, "format": "gif"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"edit out of range", "/v1/edit", `{"document": ` + testDocument + `, "edits": [{"kind": "insert", "position": 99, "text": "A"}]}`, http.StatusBadRequest, "INVALID_EDIT"},
		{"bad notation", "/v1/notation", `{"text": "1..", "from": "text"}`, http.StatusBadRequest, "PARSE_ERROR"},
		{"unknown route", "/v1/nope", `{}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, resp)
			if tt.code != "" {
				assert.Equal(t, tt.code, e.Error)
			}
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestWrongContentType(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/v1/notation", "text/plain", strings.NewReader(`{"text": "1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestForwardOrigin(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://maps.example.org")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "https://maps.example.org", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor("INVALID_EDIT"))
	assert.Equal(t, http.StatusNotFound, statusFor("FILE_NOT_FOUND"))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor("UNSUPPORTED"))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}

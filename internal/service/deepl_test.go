package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type testTranslatorConfig struct {
	url          string
	pollInterval time.Duration
}

func (c *testTranslatorConfig) GetServerPort() string          { return "0" }
func (c *testTranslatorConfig) GetTempDir() string             { return os.TempDir() }
func (c *testTranslatorConfig) GetMaxFileSize() int64          { return 0 }
func (c *testTranslatorConfig) GetLogLevel() string            { return "error" }
func (c *testTranslatorConfig) GetDeepLAPIKey() string         { return "test-key" }
func (c *testTranslatorConfig) GetDeepLAPIURL() string         { return c.url }
func (c *testTranslatorConfig) GetPollInterval() time.Duration { return c.pollInterval }
func (c *testTranslatorConfig) StrictValidation() bool         { return false }

// stubProvider implements the DeepL document endpoints. statusFn decides the
// poll response for each call, starting at 1.
type stubProvider struct {
	t        *testing.T
	statusFn func(call int64) (status, errorMessage string)
	result   []byte

	uploads     atomic.Int64
	statusCalls atomic.Int64
	lastAuth    atomic.Value
}

func (p *stubProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/document", func(w http.ResponseWriter, r *http.Request) {
		p.uploads.Add(1)
		p.lastAuth.Store(r.Header.Get("Authorization"))

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			p.t.Errorf("upload was not multipart: %v", err)
		}
		if r.FormValue("target_lang") == "" {
			p.t.Errorf("upload missing target_lang")
		}
		if _, _, err := r.FormFile("file"); err != nil {
			p.t.Errorf("upload missing file part: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"document_id":  "doc-123",
			"document_key": "key-456",
		})
	})
	mux.HandleFunc("/v2/document/doc-123", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("document_key") != "key-456" {
			p.t.Errorf("status poll missing document_key")
		}
		call := p.statusCalls.Add(1)
		status, errMsg := p.statusFn(call)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"document_id":   "doc-123",
			"status":        status,
			"error_message": errMsg,
		})
	})
	mux.HandleFunc("/v2/document/doc-123/result", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("document_key") != "key-456" {
			p.t.Errorf("result download missing document_key")
		}
		_, _ = w.Write(p.result)
	})
	return mux
}

func newStubTranslator(t *testing.T, p *stubProvider) (*DeepLTranslator, func()) {
	t.Helper()
	srv := httptest.NewServer(p.handler())
	cfg := &testTranslatorConfig{url: srv.URL, pollInterval: 5 * time.Millisecond}
	return NewDeepLTranslator(cfg, &mockServiceLogger{}), srv.Close
}

func translatorPaths(t *testing.T) (input, output string) {
	t.Helper()
	dir := t.TempDir()
	input = filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return input, filepath.Join(dir, "output.pdf")
}

func TestDeepLTranslator_ImmediateCompletion(t *testing.T) {
	provider := &stubProvider{
		t:        t,
		statusFn: func(int64) (string, string) { return "done", "" },
		result:   []byte("%PDF-1.4 translated"),
	}
	translator, done := newStubTranslator(t, provider)
	defer done()

	input, output := translatorPaths(t)
	result := translator.Translate(context.Background(), input, output, "EN", "ES")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if provider.uploads.Load() != 1 {
		t.Fatalf("expected 1 upload, got %d", provider.uploads.Load())
	}
	if auth := provider.lastAuth.Load(); auth != "DeepL-Auth-Key test-key" {
		t.Fatalf("unexpected auth header: %v", auth)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if string(data) != "%PDF-1.4 translated" {
		t.Fatalf("unexpected output content: %s", data)
	}
}

func TestDeepLTranslator_PollsUntilDone(t *testing.T) {
	provider := &stubProvider{
		t: t,
		statusFn: func(call int64) (string, string) {
			if call < 3 {
				return "translating", ""
			}
			return "done", ""
		},
		result: []byte("ok"),
	}
	translator, done := newStubTranslator(t, provider)
	defer done()

	input, output := translatorPaths(t)
	result := translator.Translate(context.Background(), input, output, "EN", "DE")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if calls := provider.statusCalls.Load(); calls != 3 {
		t.Fatalf("expected 3 status polls, got %d", calls)
	}
}

func TestDeepLTranslator_ProviderError(t *testing.T) {
	provider := &stubProvider{
		t:        t,
		statusFn: func(int64) (string, string) { return "error", "source text too large" },
	}
	translator, done := newStubTranslator(t, provider)
	defer done()

	input, output := translatorPaths(t)
	result := translator.Translate(context.Background(), input, output, "EN", "FR")

	if result.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(result.Error, "source text too large") {
		t.Fatalf("expected provider message in error, got %q", result.Error)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatalf("expected no output file on failure")
	}
}

func TestDeepLTranslator_UploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Wrong endpoint"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := &testTranslatorConfig{url: srv.URL, pollInterval: 5 * time.Millisecond}
	translator := NewDeepLTranslator(cfg, &mockServiceLogger{})

	input, output := translatorPaths(t)
	result := translator.Translate(context.Background(), input, output, "EN", "ES")

	if result.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(result.Error, "403") {
		t.Fatalf("expected status code in error, got %q", result.Error)
	}
}

func TestDeepLTranslator_MissingInputFile(t *testing.T) {
	provider := &stubProvider{
		t:        t,
		statusFn: func(int64) (string, string) { return "done", "" },
	}
	translator, done := newStubTranslator(t, provider)
	defer done()

	result := translator.Translate(context.Background(),
		filepath.Join(t.TempDir(), "missing.pdf"), filepath.Join(t.TempDir(), "out.pdf"), "EN", "ES")

	if result.Success {
		t.Fatalf("expected failure for missing input")
	}
	if provider.uploads.Load() != 0 {
		t.Fatalf("expected no upload attempt")
	}
}

func TestDeepLTranslator_ContextCancelsPolling(t *testing.T) {
	provider := &stubProvider{
		t:        t,
		statusFn: func(int64) (string, string) { return "translating", "" },
	}
	translator, done := newStubTranslator(t, provider)
	defer done()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	input, output := translatorPaths(t)
	result := translator.Translate(ctx, input, output, "EN", "ES")

	if result.Success {
		t.Fatalf("expected failure after cancellation")
	}
	if !strings.Contains(result.Error, "context deadline exceeded") {
		t.Fatalf("expected context error, got %q", result.Error)
	}
}

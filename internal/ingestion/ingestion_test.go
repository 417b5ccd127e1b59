package ingestion_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/docchat/internal/documents"
	"github.com/JaimeStill/docchat/internal/extraction"
	"github.com/JaimeStill/docchat/internal/ingestion"
	"github.com/JaimeStill/docchat/internal/resources"
	"github.com/JaimeStill/docchat/pkg/pagination"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDocuments struct {
	docs map[string]documents.Document
}

func (f *fakeDocuments) List(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDocuments) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f *fakeDocuments) Find(ctx context.Context, id string) (*documents.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDocuments) Upload(ctx context.Context, cmd documents.UploadCommand) (*documents.Document, error) {
	d, ok := f.docs[cmd.Filename]
	if !ok {
		return nil, errors.New("unexpected upload")
	}
	return &d, nil
}

type fakeResources struct {
	content string
	err     error
}

func (f *fakeResources) Create(ctx context.Context, documentID, content string) (*resources.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.content = content
	return &resources.Result{DocumentID: documentID, Chunks: 1, Message: "Resource successfully created and embedded (1 chunks)."}, nil
}

func (f *fakeResources) ListByDocument(ctx context.Context, documentID string) ([]resources.Resource, error) {
	return nil, nil
}

func (f *fakeResources) Search(ctx context.Context, query string, limit int) ([]resources.SearchResult, error) {
	return nil, nil
}

type fixture struct {
	docs *fakeDocuments
	res  *fakeResources
	sys  ingestion.System
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	blobs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/documents/d1-greeting.json":
			w.Write([]byte(`"hello world"`))
		case "/documents/d2-blank.txt":
			w.Write([]byte("   \n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(blobs.Close)

	docs := &fakeDocuments{docs: map[string]documents.Document{
		"d1": {ID: "d1", Name: "greeting.json", URL: blobs.URL + "/documents/d1-greeting.json", MimeType: "application/json"},
		"d2": {ID: "d2", Name: "blank.txt", URL: blobs.URL + "/documents/d2-blank.txt", MimeType: "text/plain"},
		"d3": {ID: "d3", Name: "gone.txt", URL: blobs.URL + "/documents/d3-gone.txt", MimeType: "text/plain"},
	}}
	docs.docs["greeting.json"] = docs.docs["d1"]
	docs.docs["blank.txt"] = docs.docs["d2"]

	ext := extraction.New(extraction.Config{FetchTimeout: 5 * time.Second, MaxFetchSize: 1 << 20}, discard)
	res := &fakeResources{}

	return &fixture{
		docs: docs,
		res:  res,
		sys:  ingestion.New(docs, ext, res, discard),
	}
}

func TestEmbed_JSONString(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.sys.Embed(context.Background(), "d1")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if f.res.content != "hello world" {
		t.Errorf("builder content = %q, want %q", f.res.content, "hello world")
	}
	if outcome.Status != ingestion.StatusEmbedded || outcome.Chunks != 1 {
		t.Errorf("outcome = %+v", outcome)
	}
}

func TestEmbed_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		resErr     error
		want       error
		wantStatus int
	}{
		{"missing id", "  ", nil, ingestion.ErrMissingInput, http.StatusBadRequest},
		{"unknown document", "nope", nil, ingestion.ErrNotFound, http.StatusNotFound},
		{"blank content", "d2", nil, ingestion.ErrNoContent, http.StatusBadRequest},
		{"blob unavailable", "d3", nil, extraction.ErrFetch, http.StatusBadGateway},
		{"embedding provider failure", "d1", resources.ErrEmbedding, ingestion.ErrEmbeddingFailed, http.StatusInternalServerError},
		{"persistence failure", "d1", resources.ErrPersistence, resources.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.res.err = tt.resErr

			_, err := f.sys.Embed(context.Background(), tt.id)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Embed() error = %v, want %v", err, tt.want)
			}
			if got := ingestion.MapHTTPStatus(err); got != tt.wantStatus {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestEmbed_ProviderErrorMessage(t *testing.T) {
	f := newFixture(t)
	f.res.err = fmt.Errorf("%w: embed batch at 0: 429 too many requests", resources.ErrEmbedding)

	_, err := f.sys.Embed(context.Background(), "d1")
	if !errors.Is(err, ingestion.ErrEmbeddingFailed) {
		t.Fatalf("Embed() error = %v, want ErrEmbeddingFailed", err)
	}

	want := "embedding failed: embed batch at 0: 429 too many requests"
	if err.Error() != want {
		t.Errorf("Embed() error = %q, want %q", err.Error(), want)
	}
}

func TestIngest(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		f := newFixture(t)

		outcome, err := f.sys.Ingest(context.Background(), documents.UploadCommand{Filename: "greeting.json"})
		if err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		if outcome.Status != ingestion.StatusEmbedded || outcome.Document == nil || outcome.Document.ID != "d1" {
			t.Errorf("outcome = %+v", outcome)
		}
	})

	t.Run("stored only", func(t *testing.T) {
		f := newFixture(t)

		outcome, err := f.sys.Ingest(context.Background(), documents.UploadCommand{Filename: "blank.txt"})
		if err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		if outcome.Status != ingestion.StatusStored || outcome.Error != "No extractable content" {
			t.Errorf("outcome = %+v", outcome)
		}
		if outcome.Document == nil || outcome.Document.ID != "d2" {
			t.Errorf("document = %+v", outcome.Document)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		if _, err := f.sys.Ingest(context.Background(), documents.UploadCommand{Filename: "other.txt"}); err == nil {
			t.Error("Ingest() error = nil, want upload error")
		}
	})
}

func newMux(f *fixture) *http.ServeMux {
	h := ingestion.NewHandler(f.sys, discard, 1<<20)
	g := h.Routes()

	mux := http.NewServeMux()
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+g.Prefix+r.Pattern, r.Handler)
	}
	return mux
}

func TestHandler_Embed(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   map[string]any
	}{
		{"unknown document", `{"documentId":"nope"}`, http.StatusNotFound, map[string]any{"error": "Document not found"}},
		{"missing documentId", `{}`, http.StatusBadRequest, map[string]any{"error": "Missing documentId"}},
		{"malformed body", `{`, http.StatusBadRequest, map[string]any{"error": "Missing documentId"}},
		{"no content", `{"documentId":"d2"}`, http.StatusBadRequest, map[string]any{"error": "No extractable content"}},
		{"embedded", `{"documentId":"d1"}`, http.StatusOK, map[string]any{"status": "embedded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newMux(newFixture(t))

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/documents/embed", strings.NewReader(tt.body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for k, v := range tt.wantBody {
				if body[k] != v {
					t.Errorf("body[%q] = %v, want %v", k, body[k], v)
				}
			}
		})
	}
}

func TestHandler_IngestNoFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "notes.txt")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/documents/ingest", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	newMux(newFixture(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No file uploaded") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSeedDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":       "alpha",
		"b.json":      `"beta"`,
		"skip.bin":    "ignored",
		"nested/c.md": "# gamma",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		os.MkdirAll(filepath.Dir(path), 0o755)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/ingest" {
			http.NotFound(w, r)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "No file uploaded"})
			return
		}
		file.Close()
		seen = append(seen, header.Filename+"|"+header.Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(map[string]any{
			"status":   "embedded",
			"document": map[string]string{"id": "id-" + header.Filename},
		})
	}))
	defer srv.Close()

	s := &Seeder{BaseURL: srv.URL + "/api/", Embed: true, Client: srv.Client()}

	results, err := s.SeedDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("SeedDir() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("SeedDir() returned %d results, want 3", len(results))
	}

	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Path, r.Err)
		}
		if r.Status != "embedded" || r.DocumentID == "" {
			t.Errorf("%s: result = %+v", r.Path, r)
		}
	}

	want := map[string]bool{
		"a.txt|text/plain":        true,
		"b.json|application/json": true,
		"c.md|text/markdown":      true,
	}
	for _, s := range seen {
		if !want[s] {
			t.Errorf("unexpected upload %q", s)
		}
	}
}

func TestSeedDir_RecordsFailures(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0o644)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "blob upload failed"})
	}))
	defer srv.Close()

	s := &Seeder{BaseURL: srv.URL, Client: srv.Client()}

	results, err := s.SeedDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("SeedDir() error = %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("results = %+v, want one failure", results)
	}
}

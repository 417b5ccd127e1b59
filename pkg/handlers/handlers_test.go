package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/docchat/pkg/handlers"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondError(w, discard, http.StatusNotFound, errors.New("Document not found"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	want := `{"error":"Document not found"}` + "\n"
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestRespondErrorWith(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondErrorWith(w, discard, http.StatusInternalServerError, errors.New("insert failed"), map[string]any{
		"url":   "http://blobs.local/documents/1-a.txt",
		"error": "overridden",
	})

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["error"] != "insert failed" {
		t.Errorf("error = %q, want %q", body["error"], "insert failed")
	}
	if body["url"] != "http://blobs.local/documents/1-a.txt" {
		t.Errorf("url = %q, want blob url", body["url"])
	}
}

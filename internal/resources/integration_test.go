package resources_test

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/docchat/internal/documents"
	"github.com/JaimeStill/docchat/internal/resources"
	"github.com/JaimeStill/docchat/migrations"
	"github.com/JaimeStill/docchat/pkg/database"
	"github.com/JaimeStill/docchat/pkg/pagination"
	"github.com/JaimeStill/docchat/pkg/storage"
)

// openTestDB migrates and opens the database named by the DATABASE_*
// variables. Tests are skipped unless DOCCHAT_INTEGRATION is set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if os.Getenv("DOCCHAT_INTEGRATION") == "" {
		t.Skip("set DOCCHAT_INTEGRATION=1 and DATABASE_* to run against Postgres")
	}

	cfg := &database.Config{}
	err := cfg.Finalize(&database.Env{
		Host:     "DATABASE_HOST",
		Port:     "DATABASE_PORT",
		Name:     "DATABASE_NAME",
		User:     "DATABASE_USER",
		Password: "DATABASE_PASSWORD",
		SSLMode:  "DATABASE_SSL_MODE",
	})
	if err != nil {
		t.Fatalf("database config: %v", err)
	}

	m, err := database.NewMigrator(cfg, migrations.FS, discard)
	if err != nil {
		t.Fatalf("NewMigrator() error = %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertDocument(t *testing.T, db *sql.DB) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO documents(id, name, url, mime_type, size) VALUES($1, $2, $3, $4, $5)`,
		id, "notes.txt", "http://localhost/blobs/documents/"+id+"-notes.txt", "text/plain", 10,
	)
	if err != nil {
		t.Fatalf("insert document: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM documents WHERE id = $1`, id) })
	return id
}

func TestCreate_ReplacesResources(t *testing.T) {
	db := openTestDB(t)
	docID := insertDocument(t, db)

	emb := &fakeEmbedder{}
	sys := resources.New(
		db,
		resources.NewBuilder(resources.NewChunker(40, 10), emb),
		emb,
		resources.SearchLimits{Default: 4, Max: 20},
		discard,
	)

	content := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 6)
	ctx := context.Background()

	first, err := sys.Create(ctx, docID, content)
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	before, err := sys.ListByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}

	second, err := sys.Create(ctx, docID, content)
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	after, err := sys.ListByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}

	if second.Replaced != first.Chunks {
		t.Errorf("second Create() replaced %d, want %d", second.Replaced, first.Chunks)
	}
	if len(after) != len(before) || len(after) != first.Chunks {
		t.Fatalf("resource count = %d after re-embed, want %d", len(after), len(before))
	}
	for i := range after {
		if after[i].ChunkIndex != before[i].ChunkIndex || after[i].Content != before[i].Content {
			t.Errorf("resource %d = %+v, want %+v", i, after[i], before[i])
		}
	}

	results, err := sys.Search(ctx, "the quick brown fox", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 || len(results) > 2 {
		t.Errorf("Search() returned %d results, want 1 or 2", len(results))
	}
}

func TestListByDocument_UnknownDocument(t *testing.T) {
	db := openTestDB(t)
	sys := resources.New(db, nil, &fakeEmbedder{}, resources.SearchLimits{Default: 4, Max: 20}, discard)

	if _, err := sys.ListByDocument(context.Background(), uuid.NewString()); err != resources.ErrDocumentNotFound {
		t.Errorf("ListByDocument() error = %v, want ErrDocumentNotFound", err)
	}
}

func TestDocumentDelete_CascadesResources(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	storeCfg := &storage.Config{BasePath: t.TempDir(), PublicURL: "http://localhost/blobs"}
	if err := storeCfg.Finalize(nil); err != nil {
		t.Fatalf("storage config: %v", err)
	}
	store, err := storage.New(storeCfg, discard)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	docs := documents.New(db, store, discard, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	doc, err := docs.Upload(ctx, documents.UploadCommand{Filename: "report..v2.txt", MimeType: "text/plain", Data: []byte("0123456789")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	emb := &fakeEmbedder{}
	res := resources.New(db, resources.NewBuilder(resources.NewChunker(40, 0), emb), emb, resources.SearchLimits{Default: 4, Max: 20}, discard)
	if _, err := res.Create(ctx, doc.ID, "a short note about deletion"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := docs.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := res.ListByDocument(ctx, doc.ID); err != resources.ErrDocumentNotFound {
		t.Errorf("ListByDocument() after delete error = %v, want ErrDocumentNotFound", err)
	}

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM resources WHERE document_id = $1`, doc.ID).Scan(&remaining); err != nil {
		t.Fatalf("count resources: %v", err)
	}
	if remaining != 0 {
		t.Errorf("resources remaining = %d, want 0", remaining)
	}

	if _, err := store.Retrieve(ctx, storage.DocumentKey(doc.ID, doc.Name)); err != storage.ErrNotFound {
		t.Errorf("Retrieve() after delete error = %v, want ErrNotFound", err)
	}

	if err := docs.Delete(ctx, doc.ID); err != documents.ErrNotFound {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

package pagination_test

import (
	"net/url"
	"os"
	"testing"

	"github.com/JaimeStill/docchat/pkg/pagination"
)

var testConfig = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantSearch   string
		wantSort     int
	}{
		{"defaults", "", 1, 20, "", 0},
		{"explicit", "page=3&page_size=5", 3, 5, "", 0},
		{"clamped", "page=-1&page_size=500", 1, 100, "", 0},
		{"search and sort", "search=report&sort=name,-createdAt", 1, 20, "report", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, testConfig)

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
			if tt.wantSearch == "" && req.SearchTerm() != nil {
				t.Errorf("SearchTerm() = %q, want nil", *req.SearchTerm())
			}
			if tt.wantSearch != "" && (req.SearchTerm() == nil || *req.SearchTerm() != tt.wantSearch) {
				t.Errorf("SearchTerm() = %v, want %q", req.SearchTerm(), tt.wantSearch)
			}
			if len(req.Sort) != tt.wantSort {
				t.Errorf("len(Sort) = %d, want %d", len(req.Sort), tt.wantSort)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"empty", 0, 10, 1},
		{"exact", 20, 10, 2},
		{"remainder", 21, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)

			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data = nil, want empty slice")
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_PAGE_SIZE", "50")
	defer os.Unsetenv("TEST_PAGE_SIZE")

	cfg := pagination.Config{}
	err := cfg.Finalize(&pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE"})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() error = nil, want default exceeding max to fail")
	}
}

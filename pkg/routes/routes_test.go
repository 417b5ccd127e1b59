package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/docchat/pkg/openapi"
	"github.com/JaimeStill/docchat/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.PathValue("id")))
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/documents",
		Tags:   []string{"Documents"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "List documents"}},
			{Method: "GET", Pattern: "/{id}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Find document"}},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/resources",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "List resources"}},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"Document": {Type: "object"},
		},
	}
}

func TestRegister_Mux(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, testGroup())

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/documents", http.StatusOK, ""},
		{"/documents/abc", http.StatusOK, "abc"},
		{"/documents/abc/resources", http.StatusOK, "abc"},
		{"/api/documents", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRegister_Spec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")
	routes.Register(http.NewServeMux(), "/api", spec, testGroup())

	for _, path := range []string{"/api/documents", "/api/documents/{id}", "/api/documents/{id}/resources"} {
		item, ok := spec.Paths[path]
		if !ok || item.Get == nil {
			t.Errorf("spec.Paths[%q] missing GET operation", path)
			continue
		}
		if len(item.Get.Tags) != 1 || item.Get.Tags[0] != "Documents" {
			t.Errorf("spec.Paths[%q].Get.Tags = %v, want [Documents]", path, item.Get.Tags)
		}
	}

	if _, ok := spec.Components.Schemas["Document"]; !ok {
		t.Error("group schema not added to components")
	}
}

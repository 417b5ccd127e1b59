// Package routes declares HTTP routes as data so that a single declaration
// both registers the handler and documents the operation in OpenAPI.
package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/docchat/pkg/openapi"
)

// Route binds a method and pattern to a handler and its OpenAPI operation.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents every route of the group, and its children, in spec.
// Paths are recorded under basePath with the group prefix applied.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec, nil)
}

func (g Group) addToSpec(parentPrefix string, spec *openapi.Spec, parentTags []string) {
	prefix := parentPrefix + g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	if len(g.Schemas) > 0 && spec.Components != nil {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		spec.SetOperation(specPath(prefix+route.Pattern), route.Method, op)
	}

	for _, child := range g.Children {
		child.addToSpec(prefix, spec, tags)
	}
}

// specPath converts ServeMux wildcards to OpenAPI form: "{key...}" becomes "{key}".
func specPath(pattern string) string {
	if pattern == "" {
		return "/"
	}
	return strings.ReplaceAll(pattern, "...}", "}")
}

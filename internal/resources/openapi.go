package resources

import "github.com/JaimeStill/docchat/pkg/openapi"

type spec struct {
	ListByDocument *openapi.Operation
	Search         *openapi.Operation
}

var Spec = spec{
	ListByDocument: &openapi.Operation{
		Summary:     "List document resources",
		Description: "List the embedded chunks of a document in chunk order. Embeddings are omitted.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document resources", "ResourceList"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search resources",
		Description: "Embed the query and rank resources by cosine similarity",
		RequestBody: openapi.RequestBodyJSON("SearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Ranked resources", "SearchResults"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalServerError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Resource": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"documentId": {Type: "string", Format: "uuid"},
				"chunkIndex": {Type: "integer", Minimum: openapi.Int(0)},
				"content":    {Type: "string"},
				"createdAt":  {Type: "string", Format: "date-time"},
			},
		},
		"ResourceList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"resources": {Type: "array", Items: openapi.SchemaRef("Resource")},
			},
		},
		"SearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"query": {Type: "string", Description: "Text to embed and compare"},
				"limit": {Type: "integer", Minimum: openapi.Int(1), Description: "Maximum results (server default applies when omitted)"},
			},
			Required: []string{"query"},
		},
		"SearchResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"resourceId": {Type: "string", Format: "uuid"},
				"documentId": {Type: "string", Format: "uuid"},
				"chunkIndex": {Type: "integer"},
				"content":    {Type: "string"},
				"similarity": {Type: "number"},
			},
		},
		"SearchResults": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"results": {Type: "array", Items: openapi.SchemaRef("SearchResult")},
			},
		},
	}
}

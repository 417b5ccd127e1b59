package documents

import "github.com/JaimeStill/docchat/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Upload *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List documents",
		Description: "List documents newest first. With id, returns {document} instead, null when absent.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("id", "string", "Return a single document by ID", false),
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in name", false),
			openapi.QueryParam("name", "string", "Filter by name (contains)", false),
			openapi.QueryParam("mime_type", "string", "Filter by exact MIME type", false),
			openapi.QueryParam("ids", "string", "Comma-separated document IDs", false),
			openapi.QueryParam("sort", "string", "Comma-separated fields, '-' prefix for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Documents list", "DocumentList"),
			500: openapi.ResponseRef("InternalServerError"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Find document",
		Description: "Find document by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document details", "Document"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload document",
		Description: "Store the file in blob storage and record its metadata. PDFs have their page count recorded.",
		RequestBody: openapi.RequestBodyMultipart("file", "Document file to upload"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document uploaded", "DocumentResponse"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseJSON("Persistence failure; url locates the stored blob", "UploadError"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete document",
		Description: "Delete the document, its embedded resources and its blob.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Format: "uuid"},
				"name":      {Type: "string"},
				"url":       {Type: "string", Format: "uri"},
				"mimeType":  {Type: "string", Example: "application/pdf"},
				"size":      {Type: "integer", Minimum: openapi.Int(0)},
				"pageCount": {Type: "integer"},
				"createdAt": {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "name", "url", "mimeType", "size", "createdAt"},
		},
		"DocumentResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"document": {Ref: "#/components/schemas/Document"},
			},
		},
		"DocumentList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"documents":   {Type: "array", Items: openapi.SchemaRef("Document")},
				"document":    {Type: openapi.Nullable("object"), Description: "Present only for id lookups"},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"UploadError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error": {Type: "string"},
				"url":   {Type: "string", Format: "uri"},
			},
			Required: []string{"error"},
		},
	}
}

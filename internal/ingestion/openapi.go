package ingestion

import "github.com/JaimeStill/docchat/pkg/openapi"

type spec struct {
	Embed  *openapi.Operation
	Ingest *openapi.Operation
}

var Spec = spec{
	Embed: &openapi.Operation{
		Summary:     "Embed document",
		Description: "Extract the text of a stored document, chunk and embed it, replacing any previous resources.",
		RequestBody: openapi.RequestBodyJSON("EmbedRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document embedded", "Outcome"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("InternalServerError"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
	Ingest: &openapi.Operation{
		Summary:     "Upload and embed document",
		Description: "Upload a file and embed it in one request. A status of stored means the upload succeeded but embedding failed.",
		RequestBody: openapi.RequestBodyMultipart("file", "Document file to upload"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document stored, and embedded when status is embedded", "Outcome"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("InternalServerError"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"EmbedRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"documentId": {Type: "string", Format: "uuid"},
			},
			Required: []string{"documentId"},
		},
		"Outcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status":   {Type: "string", Enum: []string{"embedded", "stored"}},
				"document": openapi.SchemaRef("Document"),
				"message":  {Type: "string"},
				"chunks":   {Type: "integer"},
				"error":    {Type: "string", Description: "Why embedding failed when status is stored"},
			},
			Required: []string{"status"},
		},
	}
}

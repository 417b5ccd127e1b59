package extraction

import "github.com/JaimeStill/docchat/pkg/openapi"

type spec struct {
	ParsePDF *openapi.Operation
}

// Spec documents the extraction operations.
var Spec = spec{
	ParsePDF: &openapi.Operation{
		Summary:     "Extract text from a PDF",
		Description: "Fetches the PDF at url and returns its trimmed plain text. The text may be empty.",
		RequestBody: openapi.RequestBodyJSON("ParseRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Extracted text", "ParseResponse"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("InternalServerError"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ParseRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"url": {Type: "string", Format: "uri"},
			},
			Required: []string{"url"},
		},
		"ParseResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"content": {Type: "string"},
			},
			Required: []string{"content"},
		},
	}
}

package openapi

// NewComponents returns the schemas and responses shared by every module.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":          errorResponse("Invalid request"),
			"NotFound":            errorResponse("Resource not found"),
			"Conflict":            errorResponse("Resource already exists"),
			"PayloadTooLarge":     errorResponse("Request body exceeds the configured limit"),
			"BadGateway":          errorResponse("Upstream service failed"),
			"InternalServerError": errorResponse("Internal server error"),
		},
	}
}

// AddSchemas merges schemas into the component set, replacing existing names.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the component set, replacing existing names.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}

func errorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}

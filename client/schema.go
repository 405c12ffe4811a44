package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const openAPIPath = "/swagger/v1/swagger.json"

// FetchOpenAPIDocument downloads the service's published OpenAPI document.
func (c *BooksClient) FetchOpenAPIDocument(ctx context.Context) (map[string]interface{}, error) {
	status, body, err := c.doRequest(ctx, "GET", openAPIPath, nil)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, fmt.Errorf("fetching OpenAPI document returned status %d", status)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("OpenAPI document is not valid JSON: %w", err)
	}
	return doc, nil
}

// BookSchema extracts the Book component schema from the service's OpenAPI document
// and compiles it, so that response bodies can be validated against what the
// service itself publishes.
func (c *BooksClient) BookSchema(ctx context.Context) (*gojsonschema.Schema, error) {
	doc, err := c.FetchOpenAPIDocument(ctx)
	if err != nil {
		return nil, err
	}
	raw := extractBookSchema(doc)
	if raw == nil {
		return nil, fmt.Errorf("OpenAPI document does not define a Book schema")
	}
	normalizeNullableTypes(raw)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("published Book schema does not compile: %w", err)
	}
	return schema, nil
}

// ValidateAgainstSchema returns a description of every way in which the document
// violates the schema, or nil if it conforms.
func ValidateAgainstSchema(schema *gojsonschema.Schema, document []byte) ([]string, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, err
	}
	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}

// extractBookSchema handles both OpenAPI 3 (components.schemas.Book) and
// Swagger 2 (definitions.Book) layouts.
func extractBookSchema(doc map[string]interface{}) map[string]interface{} {
	if components, ok := doc["components"].(map[string]interface{}); ok {
		if schemas, ok := components["schemas"].(map[string]interface{}); ok {
			if book, ok := schemas["Book"].(map[string]interface{}); ok {
				return book
			}
		}
	}
	if definitions, ok := doc["definitions"].(map[string]interface{}); ok {
		if book, ok := definitions["Book"].(map[string]interface{}); ok {
			return book
		}
	}
	return nil
}

// normalizeNullableTypes rewrites OpenAPI's "nullable: true" annotation, which
// JSON Schema validators do not understand, into an explicit null type union.
func normalizeNullableTypes(schema map[string]interface{}) {
	if nullable, _ := schema["nullable"].(bool); nullable {
		if t, ok := schema["type"].(string); ok {
			schema["type"] = []interface{}{t, "null"}
		}
	}
	if properties, ok := schema["properties"].(map[string]interface{}); ok {
		for _, p := range properties {
			if prop, ok := p.(map[string]interface{}); ok {
				normalizeNullableTypes(prop)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		normalizeNullableTypes(items)
	}
}

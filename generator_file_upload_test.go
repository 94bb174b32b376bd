package openapi

import (
	"testing"

	"github.com/zainokta/spectrum/analyzer"
	"github.com/zainokta/spectrum/spec"
)

func TestGenerateRequestBodyFromSchemaPlainJSON(t *testing.T) {
	g := &Generator{}
	handlerSchema := analyzer.HandlerSchema{
		RequestSchema: spec.Schema{
			Type:       "object",
			Properties: map[string]spec.Schema{"name": {Type: "string"}},
		},
	}

	body := g.generateRequestBodyFromSchema(handlerSchema)
	if _, ok := body.Content["application/json"]; !ok {
		t.Fatalf("expected application/json content, got %v", body.Content)
	}
}

func TestGenerateRequestBodyFromSchemaMultipart(t *testing.T) {
	g := &Generator{}
	handlerSchema := analyzer.HandlerSchema{
		RequestSchema: spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"caption": {Type: "string"},
				"avatar":  {Type: "string", Format: "binary"},
			},
		},
	}

	body := g.generateRequestBodyFromSchema(handlerSchema)
	if _, ok := body.Content["multipart/form-data"]; !ok {
		t.Fatalf("expected multipart/form-data content, got %v", body.Content)
	}
	if _, ok := body.Content["application/json"]; ok {
		t.Fatalf("did not expect application/json alongside multipart/form-data")
	}
}

func TestGenerateRequestBodyFromSchemaMultipartNestedFile(t *testing.T) {
	g := &Generator{}
	handlerSchema := analyzer.HandlerSchema{
		RequestSchema: spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"attachments": {
					Type:  "array",
					Items: &spec.Schema{Type: "string", Format: "binary"},
				},
			},
		},
	}

	body := g.generateRequestBodyFromSchema(handlerSchema)
	if _, ok := body.Content["multipart/form-data"]; !ok {
		t.Fatalf("expected multipart/form-data for nested array file field, got %v", body.Content)
	}
}

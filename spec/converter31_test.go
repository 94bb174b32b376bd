package spec

import (
	"encoding/json"
	"testing"
)

func buildTestDoc() Document {
	return Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: "t", Version: "1"},
		Paths:   map[string]PathItem{},
		Components: Components{
			Schemas: map[string]Schema{
				"User": {
					Type: "object",
					Properties: map[string]Schema{
						"nickname": {Type: "string", Nullable: true},
						"avatar":   {Type: "string", Format: "byte"},
					},
				},
			},
		},
	}
}

func TestConverter31FoldsNullable(t *testing.T) {
	tree, err := NewConverter31().Convert(buildTestDoc())
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	if tree["openapi"] != "3.1.0" {
		t.Fatalf("expected openapi 3.1.0, got %v", tree["openapi"])
	}
	if tree["jsonSchemaDialect"] != JSONSchemaDialect202012 {
		t.Fatalf("expected dialect to be set, got %v", tree["jsonSchemaDialect"])
	}

	user := tree["components"].(map[string]any)["schemas"].(map[string]any)["User"].(map[string]any)
	props := user["properties"].(map[string]any)
	nickname := props["nickname"].(map[string]any)

	if _, hasNullable := nickname["nullable"]; hasNullable {
		t.Fatal("expected nullable keyword to be removed after folding")
	}
	types, ok := nickname["type"].([]any)
	if !ok || len(types) != 2 || types[0] != "string" || types[1] != "null" {
		t.Fatalf("expected type array [string null], got %v", nickname["type"])
	}

	avatar := props["avatar"].(map[string]any)
	if avatar["contentEncoding"] != "base64" {
		t.Fatalf("expected contentEncoding base64, got %v", avatar["contentEncoding"])
	}
	if _, hasFormat := avatar["format"]; hasFormat {
		t.Fatal("expected format:byte to be removed after folding into contentEncoding")
	}
}

func TestConverter31IsIdempotent(t *testing.T) {
	doc := buildTestDoc()
	once, err := NewConverter31().Convert(doc)
	if err != nil {
		t.Fatalf("first Convert returned error: %v", err)
	}

	onceDoc, err := json.MarshalIndent(once, "", " ")
	if err != nil {
		t.Fatalf("failed to re-marshal first conversion: %v", err)
	}

	var reparsed map[string]any
	if err := json.Unmarshal(onceDoc, &reparsed); err != nil {
		t.Fatalf("failed to reparse first conversion: %v", err)
	}

	c := NewConverter31()
	c.walk(reparsed)

	twiceDoc, err := json.Marshal(reparsed)
	if err != nil {
		t.Fatalf("failed to marshal second pass: %v", err)
	}
	if string(twiceDoc) != string(onceDoc) {
		t.Fatalf("second pass changed the tree:\nfirst:  %s\nsecond: %s", onceDoc, twiceDoc)
	}
}

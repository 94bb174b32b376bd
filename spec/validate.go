package spec

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateDraft7 checks that every named component schema in doc, plus
// every inline request/response schema reachable from its paths, is a
// structurally legal draft-7 JSON Schema — the dialect OpenAPI 3.0.x
// schemas are defined in. This runs just before a 3.0-mode document is
// serialized; 3.1 documents go through Converter31 instead, which walks
// the JSON tree directly against the 2020-12 dialect.
//
// Compilation failure (not a validation mismatch, since there is no
// instance document here — just the schema itself) is what surfaces a
// malformed fragment: a non-array "enum", a "$ref" with no resolvable
// target, a "type" that isn't one of the JSON Schema primitive names.
func ValidateDraft7(doc Document) error {
	sl := gojsonschema.NewSchemaLoader()
	sl.Draft = gojsonschema.Draft7
	sl.AutoDetect = false

	for name, schema := range doc.Components.Schemas {
		if err := compileDraft7(sl, schema); err != nil {
			return fmt.Errorf("component schema %q: %w", name, err)
		}
	}

	for path, item := range doc.Paths {
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			if op.RequestBody != nil {
				for media, mt := range op.RequestBody.Content {
					if err := compileDraft7(sl, mt.Schema); err != nil {
						return fmt.Errorf("%s %s request body (%s): %w", method, path, media, err)
					}
				}
			}
			for status, resp := range op.Responses {
				for media, mt := range resp.Content {
					if err := compileDraft7(sl, mt.Schema); err != nil {
						return fmt.Errorf("%s %s response %s (%s): %w", method, path, status, media, err)
					}
				}
			}
		}
	}

	return nil
}

func compileDraft7(sl *gojsonschema.SchemaLoader, schema Schema) error {
	data, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = sl.Compile(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("not draft-7 legal: %w", err)
	}
	return nil
}

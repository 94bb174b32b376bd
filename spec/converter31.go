package spec

import "encoding/json"

// JSONSchemaDialect202012 is the dialect URI every OpenAPI 3.1 document
// produced by Converter31 declares, per the OpenAPI 3.1.0 default.
const JSONSchemaDialect202012 = "https://spec.openapis.org/oas/3.1/dialect/base"

// Converter31 lifts an assembled 3.0.x Document to 3.1.0.
//
// The generator's Schema type keeps OpenAPI 3.0's plain string `Type`
// and boolean `Nullable` throughout the codebase — every analyzer and
// the schema generator build and compare schemas that way, and JSON
// Schema Draft 2020-12's type-union has no natural single-field home
// in a struct those call sites can keep using unchanged. So rather than
// re-typing Schema.Type across the tree, Converter31 round-trips the
// document through its own JSON tags into a generic map[string]any and
// rewrites that tree: `nullable`/`type` fold into a `type` array, and
// `format: byte` folds into `contentEncoding: base64`, per OpenAPI
// 3.1.0 and JSON Schema Draft 2020-12 §6.1.1/§8.3. The fold is
// idempotent — a schema whose type is already an array, or that
// already carries contentEncoding, is left alone — so converting an
// already-3.1 tree a second time is a no-op.
type Converter31 struct{}

// NewConverter31 returns a ready-to-use 3.0→3.1 converter.
func NewConverter31() *Converter31 {
	return &Converter31{}
}

// Convert returns the OpenAPI 3.1.0 JSON tree for doc, ready to be
// encoded as JSON or YAML. The input Document is not mutated.
func (c *Converter31) Convert(doc Document) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}

	tree["openapi"] = "3.1.0"
	tree["jsonSchemaDialect"] = JSONSchemaDialect202012

	c.walk(tree)

	return tree, nil
}

// walk recurses through an arbitrary decoded-JSON value, folding any
// object that looks like a Schema (has a "type" or "nullable" key) in
// place, then descending into every nested map/slice regardless of
// where in the document it sits (properties, items, allOf members,
// parameter/response/requestBody schemas, components, ...).
func (c *Converter31) walk(node any) {
	switch v := node.(type) {
	case map[string]any:
		c.foldNullable(v)
		c.foldByteEncoding(v)
		for _, child := range v {
			c.walk(child)
		}
	case []any:
		for _, child := range v {
			c.walk(child)
		}
	}
}

// foldNullable rewrites {"type": "T", "nullable": true} into
// {"type": ["T", "null"]} and removes the nullable keyword.
func (c *Converter31) foldNullable(obj map[string]any) {
	nullable, _ := obj["nullable"].(bool)
	if !nullable {
		return
	}
	delete(obj, "nullable")

	switch t := obj["type"].(type) {
	case string:
		obj["type"] = []any{t, "null"}
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "null" {
				return // already folded
			}
		}
		obj["type"] = append(t, "null")
	case nil:
		obj["type"] = []any{"null"}
	}
}

// foldByteEncoding rewrites {"type":"string","format":"byte"} into
// {"type":"string","contentEncoding":"base64"}.
func (c *Converter31) foldByteEncoding(obj map[string]any) {
	if _, hasEncoding := obj["contentEncoding"]; hasEncoding {
		return
	}
	format, _ := obj["format"].(string)
	if format != "byte" {
		return
	}
	if t, ok := obj["type"].(string); !ok || t != "string" {
		return
	}
	obj["contentEncoding"] = "base64"
	delete(obj, "format")
}

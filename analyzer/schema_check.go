package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/zainokta/spectrum/spec"
)

// SelfCheck compiles a synthesized schema fragment as a standalone JSON
// Schema document, surfacing structural defects (a dangling $ref, a
// malformed "properties" shape, an enum that isn't an array, ...)
// before the fragment is assembled into the final spec.Document. This
// is the analyzer package's own sanity pass, distinct from the
// document-level draft-7 check the `spectrum generate` command runs on a
// 3.0 document before writing it (see spec.ValidateDraft7).
//
// It never validates example/request data against the fragment — only
// that the fragment itself is a legal schema.
func SelfCheck(fragment spec.Schema) error {
	data, err := json.Marshal(fragment)
	if err != nil {
		return fmt.Errorf("marshal schema fragment: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode schema fragment: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	const resourceURL = "spectrum://fragment.json"
	if err := compiler.AddResource(resourceURL, doc); err != nil {
		return fmt.Errorf("schema fragment is not a valid JSON Schema: %w", err)
	}
	if _, err := compiler.Compile(resourceURL); err != nil {
		return fmt.Errorf("schema fragment failed compilation: %w", err)
	}

	return nil
}

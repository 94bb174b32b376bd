package model

// Parameter is a synthesized query/header parameter, independent of its
// eventual OpenAPI serialization.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	GoType      string
	Rules       ValidationRules
	Example     any
}

// Property is one field of a Resource or Presenter payload.
type Property struct {
	Name        string
	GoType      string
	Description string
	Nullable    bool
	// Conditional marks a field that is only sometimes present in the
	// response (Go analogue of Resource::when()/whenLoaded()). No schema
	// generator in this module reads Property values, so the flag does
	// not by itself keep a field out of any schema's required list.
	Conditional bool
	Items       *Property // element type when GoType == "array"/"slice"
	Fields      []Property
	Enum        *Enum
	Example     any
}

// Resource is the Go-native analogue of a Laravel API Resource's
// toArray() output: a response DTO's inferred shape, built by walking a
// struct's JSON-tagged fields (and any spectrum.When(...) calls detected
// in a handler's response construction).
type Resource struct {
	Name       string
	GoType     string
	Properties []Property
	// CyclicRef marks a Resource whose property GoTypes refer back to
	// it (directly or via a chain). No code in this module sets or
	// reads it, and no schema generator consumes Resource values, so it
	// does not by itself produce an OpenAPI $ref.
	CyclicRef bool
}

// Presenter is the Go-native analogue of a Fractal transformer: a type
// whose Transform/Includes method set lets the schema generator infer a
// response shape plus optional include-driven variants.
type Presenter struct {
	Name               string
	GoType             string
	DefaultIncludes    []string
	AvailableIncludes  []string
	Base               Resource
	IncludedProperties map[string][]Property
}

// Package model holds the framework-agnostic domain entities that flow
// through the analyzer pipeline: routes, parameters, validation rules,
// resources and enums. Nothing in this package knows about gin, hertz,
// OpenAPI, or the cache — it is the intermediate representation every
// analyzer reads from and writes to.
package model

// Route describes a single HTTP route discovered from a host framework,
// carrying enough source-level detail for every downstream analyzer to
// work without re-walking the framework's router.
type Route struct {
	Method       string
	Path         string
	HandlerName  string
	Handler      any
	RequestType  any
	ResponseType any
	Middleware   []string
	FilePath     string
	LineNumber   int
	Parameters   []RouteParameter
}

// RouteParameter is a path, query, header or cookie parameter attached to
// a Route, before schema synthesis turns it into an OpenAPI parameter.
type RouteParameter struct {
	Name     string
	In       string // "path", "query", "header", "cookie"
	Required bool
	GoType   string
	Rules    ValidationRules
}

// ValidationRules is the Go-native analogue of Laravel's pipe-string rule
// collection: the decoded vocabulary of a `validate:"..."` struct tag (or
// an inline validator.Var/validator.Struct call), independent of the
// go-playground/validator library's own internal representation so the
// schema generator can reason about it without a validator.Validate.
type ValidationRules struct {
	Required    bool
	Nullable    bool
	Min         *float64
	Max         *float64
	Len         *int
	OneOf       []string
	Email       bool
	UUID        bool
	URL         bool
	Numeric     bool
	Alpha       bool
	Alphanum    bool
	DateTime    string // non-empty = expected time layout/format name
	File        bool
	Regexp      string
	Tokens      []string // raw, unrecognized tokens kept for diagnostics
}

// HasFileRule reports whether any rule in the collection marks the field
// as file-bearing. A field with a file rule forces its request body's
// content type to multipart/form-data (spec testable property: file-rule
// monotonicity propagates up to the containing object's encoding).
func (v ValidationRules) HasFileRule() bool {
	return v.File
}

// IsOptional reports whether the field may be omitted from a request.
func (v ValidationRules) IsOptional() bool {
	return !v.Required
}

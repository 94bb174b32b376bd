// Package errs implements the generator's error taxonomy: a small set
// of typed errors for each pipeline stage, plus a Collector that lets
// non-fatal per-route failures accumulate without aborting a whole run.
package errs

import "fmt"

// Stage identifies which pipeline phase produced an error, so a
// Collector can group and summarize failures by stage.
type Stage string

const (
	StageRouteLoading     Stage = "route_loading"
	StageAnalysis          Stage = "analysis"
	StageSchemaGeneration  Stage = "schema_generation"
	StageOpenApiAssembly   Stage = "openapi_assembly"
	StageCache             Stage = "cache"
	StageConversion        Stage = "conversion"
	StageIO                Stage = "io"
)

// baseError carries the fields every taxonomy member shares: the stage
// it belongs to, the route/file it was about (when applicable), and the
// wrapped cause.
type baseError struct {
	stage Stage
	msg   string
	cause error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.stage, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.stage, e.msg)
}

func (e *baseError) Unwrap() error { return e.cause }

// RouteLoadingError wraps a failure discovering or parsing routes from
// the host framework's router.
type RouteLoadingError struct {
	*baseError
	Framework string
}

func NewRouteLoadingError(framework, msg string, cause error) *RouteLoadingError {
	return &RouteLoadingError{baseError: &baseError{stage: StageRouteLoading, msg: msg, cause: cause}, Framework: framework}
}

// AnalysisError wraps a failure in one of the per-route analyzers
// (handler, query/header, pagination, etc). It is non-fatal by
// default — the generator logs it, records it in a Collector, and
// continues with the remaining routes.
type AnalysisError struct {
	*baseError
	Analyzer string
	Route    string
}

func NewAnalysisError(analyzer, route, msg string, cause error) *AnalysisError {
	return &AnalysisError{baseError: &baseError{stage: StageAnalysis, msg: msg, cause: cause}, Analyzer: analyzer, Route: route}
}

// SchemaGenerationError wraps a failure synthesizing a JSON Schema
// fragment from a Go type (cycle overflow, unsupported reflect.Kind,
// draft-validation rejection).
type SchemaGenerationError struct {
	*baseError
	TypeName string
}

func NewSchemaGenerationError(typeName, msg string, cause error) *SchemaGenerationError {
	return &SchemaGenerationError{baseError: &baseError{stage: StageSchemaGeneration, msg: msg, cause: cause}, TypeName: typeName}
}

// OpenApiAssemblyError wraps a fatal failure assembling the final
// document (e.g. a $ref cycle the generator cannot resolve). Unlike
// AnalysisError, assembly errors abort the run.
type OpenApiAssemblyError struct {
	*baseError
}

func NewOpenApiAssemblyError(msg string, cause error) *OpenApiAssemblyError {
	return &OpenApiAssemblyError{baseError: &baseError{stage: StageOpenApiAssembly, msg: msg, cause: cause}}
}

// CacheError wraps a failure reading, writing, or invalidating a cache
// record. The cache degrades to "always miss" on these rather than
// failing the run.
type CacheError struct {
	*baseError
	Key string
}

func NewCacheError(key, msg string, cause error) *CacheError {
	return &CacheError{baseError: &baseError{stage: StageCache, msg: msg, cause: cause}, Key: key}
}

// ConversionError wraps a failure in the 3.0→3.1 dialect lift.
type ConversionError struct {
	*baseError
}

func NewConversionError(msg string, cause error) *ConversionError {
	return &ConversionError{baseError: &baseError{stage: StageConversion, msg: msg, cause: cause}}
}

// IOError wraps a failure reading source files, writing the generated
// spec, or talking to the filesystem watcher.
type IOError struct {
	*baseError
	Path string
}

func NewIOError(path, msg string, cause error) *IOError {
	return &IOError{baseError: &baseError{stage: StageIO, msg: msg, cause: cause}, Path: path}
}

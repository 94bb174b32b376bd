package analyzer

import (
	"go/ast"
	"mime/multipart"
	"reflect"
)

var multipartFileHeaderType = reflect.TypeOf(multipart.FileHeader{})

// FileUploadAnalyzer detects file-bearing request fields the two ways
// spec.md §6 describes: a declared `*multipart.FileHeader` struct field
// (IsFileUploadType; schema_generator.go's reflection walker compares
// against the same multipartFileHeaderType directly) or a handler body that reads an upload directly via
// FormFile without ever binding it onto a struct — gin, hertz, chi
// (net/http) and fiber all name this accessor FormFile, so one check
// covers every framework this library analyzes.
type FileUploadAnalyzer struct{}

// NewFileUploadAnalyzer creates a FileUploadAnalyzer.
func NewFileUploadAnalyzer() *FileUploadAnalyzer {
	return &FileUploadAnalyzer{}
}

// Detect walks body for FormFile(...) calls, returning the form-key
// name of every distinct upload found. A call whose key argument isn't
// a literal (computed at runtime) is recorded under "file" rather than
// dropped, matching ParseValidationTag's "best effort" handling of
// information it cannot fully resolve statically.
func (FileUploadAnalyzer) Detect(body *ast.BlockStmt) []string {
	if body == nil {
		return nil
	}

	found := map[string]bool{}
	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "FormFile" {
			return true
		}
		if name, ok := stringArgAt(call, 0); ok {
			found[name] = true
		} else {
			found["file"] = true
		}
		return true
	})

	if len(found) == 0 {
		return nil
	}
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	return names
}

// IsFileUploadType reports whether t (after unwrapping pointers and
// slices) is multipart.FileHeader — the stdlib type every framework's
// FormFile accessor returns. A declared field of this type is a file
// upload regardless of any validate tag.
func IsFileUploadType(t reflect.Type) bool {
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	return t == multipartFileHeaderType
}

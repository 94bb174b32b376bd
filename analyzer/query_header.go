package analyzer

import (
	"go/ast"
	"strings"

	"github.com/zainokta/spectrum/model"
)

// queryAccessors maps a framework's query-accessor method name to the
// Go type its result should be inferred as — the type-suffixed variants
// (Int, Bool, ...) type-inference hint from spec.md §4.6.
var queryAccessors = map[string]string{
	"Query":        "string",
	"DefaultQuery": "string",
	"QueryInt":     "integer",
	"QueryBool":    "boolean",
	"QueryArray":   "array",
}

var headerAccessors = map[string]string{
	"GetHeader": "string",
	"Header":    "string",
}

// QueryParameterAnalyzer and HeaderParameterAnalyzer (combined here,
// since both walk the same call-expression shapes and differ only in
// which accessor table they consult) detect a handler's
// c.Query(k)/ctx.Query(k)-style and c.GetHeader(k)-style calls,
// producing the implicit query/header parameters spec.md §4.6 calls
// for. Parameters already bound through a declared request DTO (and so
// already covered by the request schema's properties) are excluded by the caller via
// the `seen` set, matching the "excludes keys that already appear as
// form-request parameters" rule.
type QueryHeaderAnalyzer struct{}

// NewQueryHeaderAnalyzer creates a QueryHeaderAnalyzer.
func NewQueryHeaderAnalyzer() *QueryHeaderAnalyzer {
	return &QueryHeaderAnalyzer{}
}

// Analyze walks body, returning the query and header parameters implied
// by its accessor calls. seen holds field names already bound via a
// request DTO and is consulted (not mutated) to suppress duplicates.
func (QueryHeaderAnalyzer) Analyze(body *ast.BlockStmt, seen map[string]bool) (query, header []model.Parameter) {
	if body == nil {
		return nil, nil
	}

	queryFound := map[string]model.Parameter{}
	headerFound := map[string]model.Parameter{}

	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if goType, ok := queryAccessors[sel.Sel.Name]; ok {
			if name, ok := stringArgAt(call, 0); ok && !seen[name] {
				queryFound[name] = model.Parameter{Name: name, In: "query", GoType: goType}
			}
			return true
		}

		switch sel.Sel.Name {
		case "GetHeader", "Header":
			if name, ok := stringArgAt(call, 0); ok && !seen[name] {
				headerFound[name] = model.Parameter{Name: name, In: "header", GoType: "string"}
			}
		case "BearerToken":
			if !seen["Authorization"] {
				headerFound["Authorization"] = model.Parameter{Name: "Authorization", In: "header", GoType: "string", Required: true}
			}
		}

		return true
	})

	return mapValues(queryFound), mapValues(headerFound)
}

// stringArgAt returns the literal string value of call's i-th argument,
// stripping surrounding quotes, when that argument is a basic string
// literal (the common `c.Query("name")` shape). Computed arguments are
// not resolved and report ok=false.
func stringArgAt(call *ast.CallExpr, i int) (string, bool) {
	if i >= len(call.Args) {
		return "", false
	}
	lit, ok := call.Args[i].(*ast.BasicLit)
	if !ok {
		return "", false
	}
	return strings.Trim(lit.Value, `"`), true
}

func mapValues(m map[string]model.Parameter) []model.Parameter {
	if len(m) == 0 {
		return nil
	}
	out := make([]model.Parameter, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}

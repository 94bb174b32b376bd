package analyzer

import (
	"go/ast"

	"github.com/zainokta/spectrum/model"
	"github.com/zainokta/spectrum/spec"
)

// PaginationStyle identifies which of the three Eloquent-equivalent
// pagination helpers a handler used.
type PaginationStyle string

const (
	PaginationNone         PaginationStyle = ""
	PaginationLengthAware  PaginationStyle = "length-aware"
	PaginationSimple       PaginationStyle = "simple"
	PaginationCursor       PaginationStyle = "cursor"
)

// PaginationAnalyzer detects paginate.Paginate/Simple/Cursor call
// shapes in a handler body (spec.md §4.7 / SPEC_FULL.md §6's Go-native
// analogue of paginate()/simplePaginate()/cursorPaginate()).
type PaginationAnalyzer struct{}

// NewPaginationAnalyzer creates a PaginationAnalyzer.
func NewPaginationAnalyzer() *PaginationAnalyzer {
	return &PaginationAnalyzer{}
}

// Detect walks body looking for a call to paginate.Paginate,
// paginate.Simple, or paginate.Cursor and reports the matching style.
// It does not attempt to resolve the wrapped item type; the caller
// already has the handler's response schema from AnalyzeHandler and
// only needs the envelope shape to wrap it in.
func (PaginationAnalyzer) Detect(body *ast.BlockStmt) PaginationStyle {
	style := PaginationNone
	if body == nil {
		return style
	}

	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		switch sel.Sel.Name {
		case "Paginate":
			style = PaginationLengthAware
			return false
		case "Simple":
			style = PaginationSimple
			return false
		case "Cursor":
			style = PaginationCursor
			return false
		}
		return true
	})

	return style
}

// ImplicitParameters returns the query parameters a pagination style
// implies: page/per_page for length-aware and simple pagination,
// cursor for cursor pagination.
func (style PaginationStyle) ImplicitParameters() []model.Parameter {
	switch style {
	case PaginationLengthAware, PaginationSimple:
		return []model.Parameter{
			{Name: "page", In: "query", GoType: "integer", Example: 1},
			{Name: "per_page", In: "query", GoType: "integer", Example: 15},
		}
	case PaginationCursor:
		return []model.Parameter{
			{Name: "cursor", In: "query", GoType: "string"},
		}
	default:
		return nil
	}
}

// WrapEnvelope wraps item (the resource schema for one page element) in
// the envelope shape matching style: length-aware pagination carries
// total/per_page/current_page/last_page, simple pagination carries only
// has_more, cursor pagination carries next_cursor/prev_cursor.
func (style PaginationStyle) WrapEnvelope(item spec.Schema) spec.Schema {
	items := item
	data := spec.Schema{Type: "array", Items: &items}

	switch style {
	case PaginationLengthAware:
		return spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"data":         data,
				"total":        {Type: "integer"},
				"per_page":     {Type: "integer"},
				"current_page": {Type: "integer"},
				"last_page":    {Type: "integer"},
			},
		}
	case PaginationSimple:
		return spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"data":     data,
				"has_more": {Type: "boolean"},
			},
		}
	case PaginationCursor:
		return spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"data":        data,
				"next_cursor": {Type: "string", Nullable: true},
				"prev_cursor": {Type: "string", Nullable: true},
			},
		}
	default:
		return item
	}
}

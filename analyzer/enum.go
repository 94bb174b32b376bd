package analyzer

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"

	"github.com/zainokta/spectrum/model"
	"github.com/zainokta/spectrum/spec"
)

// EnumAnalyzer recognizes Go's two idioms for a PHP backed/unit enum: a
// named string/int type with a package-level `Values() []T` method
// (detected at runtime via reflection, the fast path for types already
// loaded into the process), and a named type with a const block of the
// same type (detected via go/ast against source, for types that are
// only ever referenced by name in a handler signature and never
// instantiated where reflection could see them).
type EnumAnalyzer struct{}

// NewEnumAnalyzer creates an EnumAnalyzer.
func NewEnumAnalyzer() *EnumAnalyzer {
	return &EnumAnalyzer{}
}

// FromReflectType attempts to recognize t as an enum by looking for a
// `Values() []T` method on t or *t. ok is false when t has no such
// method, i.e. it is an ordinary named type rather than an enum.
func (EnumAnalyzer) FromReflectType(t reflect.Type) (model.Enum, bool) {
	if t.Kind() != reflect.String && !isIntKind(t.Kind()) {
		return model.Enum{}, false
	}

	method, ok := lookupValuesMethod(t)
	if !ok {
		return model.Enum{}, false
	}

	out := method.Call(nil)
	if len(out) != 1 || out[0].Kind() != reflect.Slice {
		return model.Enum{}, false
	}

	values := make([]string, 0, out[0].Len())
	for i := 0; i < out[0].Len(); i++ {
		values = append(values, fmt.Sprintf("%v", out[0].Index(i).Interface()))
	}

	goType := "string"
	if isIntKind(t.Kind()) {
		goType = "integer"
	}

	return model.Enum{Name: t.Name(), GoType: goType, Values: values}, true
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func lookupValuesMethod(t reflect.Type) (reflect.Value, bool) {
	zero := reflect.New(t).Elem()
	if m := zero.MethodByName("Values"); m.IsValid() && m.Type().NumIn() == 0 {
		return m, true
	}
	ptr := reflect.New(t)
	if m := ptr.MethodByName("Values"); m.IsValid() && m.Type().NumIn() == 0 {
		return m, true
	}
	return reflect.Value{}, false
}

// FromSource scans file for `type <typeName> string|int...` plus a
// top-level const block declaring values of that type, returning the
// case names/values in declaration order. Used when a type is named in
// a handler signature but no live value exists for reflection to walk.
func (EnumAnalyzer) FromSource(file, typeName string) (model.Enum, error) {
	fset := token.NewFileSet()
	src, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
	if err != nil {
		return model.Enum{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	goType := ""
	for _, decl := range src.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name.Name != typeName {
				continue
			}
			ident, ok := ts.Type.(*ast.Ident)
			if !ok {
				continue
			}
			switch ident.Name {
			case "string":
				goType = "string"
			case "int", "int8", "int16", "int32", "int64",
				"uint", "uint8", "uint16", "uint32", "uint64":
				goType = "integer"
			}
		}
	}
	if goType == "" {
		return model.Enum{}, fmt.Errorf("type %s not found as a string/int declaration in %s", typeName, file)
	}

	var values []string
	for _, decl := range src.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			if vs.Type != nil {
				if ident, ok := vs.Type.(*ast.Ident); !ok || ident.Name != typeName {
					continue
				}
			}
			for _, value := range vs.Values {
				if lit, ok := value.(*ast.BasicLit); ok {
					values = append(values, strings.Trim(lit.Value, `"`))
				}
			}
		}
	}

	return model.Enum{Name: typeName, GoType: goType, Values: values}, nil
}

// ApplyEnum merges an Enum into schema, setting its type to the enum's
// backing type and its enum value list — spec.md §4.9's "enum merging"
// step, which overrides any inferred type.
func ApplyEnum(enum model.Enum, schema *spec.Schema) {
	schema.Type = enum.GoType
	schema.Enum = enum.Values
	if len(enum.Values) > 0 {
		schema.Example = enum.Values[0]
	}
}

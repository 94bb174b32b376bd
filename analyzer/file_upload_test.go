package analyzer

import (
	"go/ast"
	"go/parser"
	"go/token"
	"mime/multipart"
	"reflect"
	"testing"
)

func parseFuncBody(t *testing.T, src string) *ast.BlockStmt {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "handler.go", "package p\nfunc h() {\n"+src+"\n}", 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fn := file.Decls[0].(*ast.FuncDecl)
	return fn.Body
}

func TestFileUploadAnalyzerDetect(t *testing.T) {
	body := parseFuncBody(t, `file, err := c.FormFile("avatar")
if err != nil {
	return
}
_ = file`)

	got := NewFileUploadAnalyzer().Detect(body)
	if len(got) != 1 || got[0] != "avatar" {
		t.Fatalf("Detect() = %v, want [avatar]", got)
	}
}

func TestFileUploadAnalyzerDetectNoUpload(t *testing.T) {
	body := parseFuncBody(t, `c.JSON(200, nil)`)
	if got := NewFileUploadAnalyzer().Detect(body); got != nil {
		t.Fatalf("Detect() = %v, want nil", got)
	}
}

func TestIsFileUploadType(t *testing.T) {
	header := reflect.TypeOf(multipart.FileHeader{})
	ptr := reflect.TypeOf(&multipart.FileHeader{})
	slice := reflect.TypeOf([]*multipart.FileHeader{})
	other := reflect.TypeOf("")

	for _, tc := range []struct {
		name string
		t    reflect.Type
		want bool
	}{
		{"bare", header, true},
		{"pointer", ptr, true},
		{"slice of pointer", slice, true},
		{"unrelated type", other, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFileUploadType(tc.t); got != tc.want {
				t.Errorf("IsFileUploadType(%s) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

package common

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/zainokta/spectrum/analyzer"
	"github.com/zainokta/spectrum/spec"
)

// ASTAnalyzer provides utilities for AST-based handler analysis
type ASTAnalyzer struct {
	typeRegistry *analyzer.DynamicTypeRegistry
	schemaGen    *analyzer.SchemaGenerator
}

// NewASTAnalyzer creates a new AST analyzer
func NewASTAnalyzer() *ASTAnalyzer {
	return &ASTAnalyzer{
		typeRegistry: analyzer.NewDynamicTypeRegistry(),
		schemaGen:    analyzer.NewSchemaGenerator(),
	}
}

// GetTypeRegistry returns the internal type registry
func (a *ASTAnalyzer) GetTypeRegistry() *analyzer.DynamicTypeRegistry {
	return a.typeRegistry
}

// FindHandlerSourceFile attempts to find the source file containing the handler for library usage
func (a *ASTAnalyzer) FindHandlerSourceFile(handlerFuncName string) string {
	// Extract package path from handler function name
	// Example: some-service/internal/interfaces/http/handlers.(*SomeHandler).Method-fm
	// -> some-service/internal/interfaces/http/handlers
	if !strings.Contains(handlerFuncName, ".") {
		return ""
	}

	// Extract the package path before the receiver or function
	pkgPath := a.ExtractPackagePathFromFunction(handlerFuncName)
	if pkgPath == "" {
		return ""
	}

	// Try to find the source file using multiple strategies for library usage
	return a.FindSourceFileInConsumerModule(pkgPath)
}

// ExtractPackagePathFromFunction extracts clean package path from function name
func (a *ASTAnalyzer) ExtractPackagePathFromFunction(handlerFuncName string) string {
	// Handle different function name patterns:
	// 1. some-service/pkg/handlers.(*Handler).Method-fm
	// 2. some-service/pkg/handlers.Function
	// 3. some-service/pkg/handlers.Function.func1
	// Find the last occurrence of .) or just .
	var pkgPath string

	// Pattern 1: (*Type).Method-fm
	if strings.Contains(handlerFuncName, "(*") && strings.Contains(handlerFuncName, ").") {
		start := strings.LastIndex(handlerFuncName, "(*")
		if start > 0 {
			pkgPath = handlerFuncName[:start-1] // -1 to remove the dot before (*
		}
	} else {
		// Pattern 2 & 3: Simple function calls
		lastDot := strings.LastIndex(handlerFuncName, ".")
		if lastDot > 0 {
			pkgPath = handlerFuncName[:lastDot]
		}
	}

	return strings.TrimSpace(pkgPath)
}

// FindSourceFileInConsumerModule finds source files in the consuming application's module
func (a *ASTAnalyzer) FindSourceFileInConsumerModule(pkgPath string) string {
	// Get the consuming application's working directory
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Get the consuming application's module name
	consumerModule := a.GetCurrentModuleName()
	if consumerModule == "" {
		return ""
	}

	// Remove the consumer module prefix to get relative path
	relativePkgPath := strings.TrimPrefix(pkgPath, consumerModule+"/")
	if relativePkgPath == pkgPath {
		// If no prefix was removed, the package might be using a different pattern
		// Try to extract the relative part differently
		parts := strings.Split(pkgPath, "/")
		if len(parts) > 2 {
			// Skip the first part (likely module domain) and reconstruct
			relativePkgPath = strings.Join(parts[1:], "/")
		}
	}

	// Convert package path to file system path
	pkgDir := filepath.Join(wd, filepath.FromSlash(relativePkgPath))

	// Strategy 1: Look for .go files in the exact package directory
	if sourceFile := a.FindGoFilesInDirectory(pkgDir); sourceFile != "" {
		return sourceFile
	}

	// Strategy 2: Try common handler directory patterns
	commonPatterns := []string{
		filepath.Join(wd, "handlers"),
		filepath.Join(wd, "internal", "handlers"),
		filepath.Join(wd, "pkg", "handlers"),
		filepath.Join(wd, "api", "handlers"),
		filepath.Join(wd, "internal", "api", "handlers"),
	}

	for _, pattern := range commonPatterns {
		if sourceFile := a.FindGoFilesInDirectory(pattern); sourceFile != "" {
			return sourceFile
		}
	}

	return ""
}

// GetCurrentModuleName gets the consuming application's Go module name dynamically
func (a *ASTAnalyzer) GetCurrentModuleName() string {
	// First, try to get the module name from runtime caller context
	// This helps identify the actual application using the library
	if moduleName := a.GetModuleFromRuntimeCaller(); moduleName != "" {
		return moduleName
	}

	// Fallback: Get current working directory (consumer's directory)
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Find the go.mod file in the consuming application
	if goModPath := a.FindGoModPath(wd); goModPath != "" {
		return a.GetModuleNameFromGoMod(goModPath)
	}

	return ""
}

// GetModuleFromRuntimeCaller attempts to extract module name from runtime caller info
func (a *ASTAnalyzer) GetModuleFromRuntimeCaller() string {
	// Walk up the call stack to find the first caller outside our library
	for i := 1; i < 20; i++ {
		pc, _, _, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		fullName := fn.Name()
		// Skip functions from our own package
		if strings.Contains(fullName, "github.com/openapi-gen/openapi-gen") {
			continue
		}

		// Extract module path from function name
		parts := strings.Split(fullName, "/")
		if len(parts) > 2 {
			// Reconstruct module path (e.g., github.com/user/module)
			return strings.Join(parts[:3], "/")
		}
	}

	return ""
}

// FindGoModPath finds the go.mod file path
func (a *ASTAnalyzer) FindGoModPath(startDir string) string {
	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return goModPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// GetModuleNameFromGoMod extracts module name from go.mod file
func (a *ASTAnalyzer) GetModuleNameFromGoMod(goModPath string) string {
	content, err := os.ReadFile(goModPath)
	if err != nil {
		return ""
	}

	lines := strings.Split(string(content), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimPrefix(line, "module ")
		}
	}

	return ""
}

// FindGoFilesInDirectory looks for Go source files in a directory
func (a *ASTAnalyzer) FindGoFilesInDirectory(dir string) string {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return ""
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".go") {
			return filepath.Join(dir, file.Name())
		}
	}

	return ""
}

// AnalyzeHandlerWithAST analyzes a handler using AST parsing with error handling
func (a *ASTAnalyzer) AnalyzeHandlerWithAST(sourceFile string, methodName string, frameworkType string) analyzer.HandlerSchema {
	schema := analyzer.HandlerSchema{}

	// Check if source file exists (Docker-compatible check)
	if _, err := os.Stat(sourceFile); os.IsNotExist(err) {
		// Source file not available, return empty schema
		// This allows fallback mechanisms to take over
		return schema
	}

	// Parse the source file with error handling
	fset := token.NewFileSet()
	src, err := parser.ParseFile(fset, sourceFile, nil, parser.ParseComments)
	if err != nil {
		// Parse error, likely due to missing file or syntax issues
		return schema
	}

	// Parse imports to populate the dynamic type registry
	a.typeRegistry.ParseImports(src)

	// Find the handler method
	var methodDecl *ast.FuncDecl
	for _, decl := range src.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == methodName {
			methodDecl = fn
			break
		}
	}

	if methodDecl == nil {
		return schema
	}

	// Extract request and response types based on framework
	switch frameworkType {
	case string(FrameworkHertz):
		return a.ExtractHertzHandlerTypes(methodDecl, sourceFile)
	case string(FrameworkGin):
		return a.ExtractGinHandlerTypes(methodDecl, sourceFile)
	case string(FrameworkChi):
		return a.ExtractChiHandlerTypes(methodDecl, sourceFile)
	case string(FrameworkFiber):
		return a.ExtractFiberHandlerTypes(methodDecl, sourceFile)
	}

	return schema
}

// ExtractHertzHandlerTypes extracts request/response types from Hertz handler
func (a *ASTAnalyzer) ExtractHertzHandlerTypes(methodDecl *ast.FuncDecl, sourceFile string) analyzer.HandlerSchema {
	schema := analyzer.HandlerSchema{}

	// Look for BindAndValidate calls to extract request type
	if reqType := a.ExtractHertzRequestType(methodDecl); reqType != nil {
		schema.RequestSchema = a.schemaGen.GenerateSchemaFromType(reqType)
	}

	// Look for JSON calls to extract response type
	if respType := a.ExtractHertzResponseType(methodDecl); respType != nil {
		schema.ResponseSchema = a.schemaGen.GenerateSchemaFromType(respType)
	}

	a.fillBodyDerivedFields(methodDecl, &schema)

	return schema
}

// ExtractGinHandlerTypes extracts request/response types from Gin handler
func (a *ASTAnalyzer) ExtractGinHandlerTypes(methodDecl *ast.FuncDecl, sourceFile string) analyzer.HandlerSchema {
	schema := analyzer.HandlerSchema{}

	// Look for ShouldBind calls to extract request type
	if reqType := a.ExtractGinRequestType(methodDecl); reqType != nil {
		schema.RequestSchema = a.schemaGen.GenerateSchemaFromType(reqType)
	}

	// Look for JSON calls to extract response type
	if respType := a.ExtractGinResponseType(methodDecl); respType != nil {
		schema.ResponseSchema = a.schemaGen.GenerateSchemaFromType(respType)
	}

	a.fillBodyDerivedFields(methodDecl, &schema)

	return schema
}

// fillBodyDerivedFields runs the query/header and pagination AST
// analyzers over methodDecl's body, shared across frameworks since
// neither depends on which binding call populated the request type.
func (a *ASTAnalyzer) fillBodyDerivedFields(methodDecl *ast.FuncDecl, schema *analyzer.HandlerSchema) {
	if methodDecl.Body == nil {
		return
	}

	seen := map[string]bool{}
	for name := range schema.RequestSchema.Properties {
		seen[name] = true
	}

	qh := analyzer.NewQueryHeaderAnalyzer()
	schema.QueryParameters, schema.HeaderParameters = qh.Analyze(methodDecl.Body, seen)

	schema.Pagination = analyzer.NewPaginationAnalyzer().Detect(methodDecl.Body)

	a.fillFileUploadFields(methodDecl.Body, schema)
}

// fillFileUploadFields folds any FormFile(...) calls found in body into
// schema.RequestSchema as binary-string properties, covering handlers
// that read an upload directly instead of binding it onto a struct
// field (the only shape the reflection-based struct walker's
// multipart.FileHeader check would otherwise miss).
func (a *ASTAnalyzer) fillFileUploadFields(body *ast.BlockStmt, schema *analyzer.HandlerSchema) {
	files := analyzer.NewFileUploadAnalyzer().Detect(body)
	if len(files) == 0 {
		return
	}

	if schema.RequestSchema.Type == "" {
		schema.RequestSchema.Type = "object"
	}
	if schema.RequestSchema.Properties == nil {
		schema.RequestSchema.Properties = make(map[string]spec.Schema)
	}
	for _, name := range files {
		if _, exists := schema.RequestSchema.Properties[name]; !exists {
			schema.RequestSchema.Properties[name] = spec.Schema{Type: "string", Format: "binary", Description: "Uploaded file"}
		}
		schema.RequestSchema.Required = append(schema.RequestSchema.Required, name)
	}
}

// ExtractHertzRequestType extracts request type from Hertz handler AST
func (a *ASTAnalyzer) ExtractHertzRequestType(methodDecl *ast.FuncDecl) reflect.Type {
	// Look for BindAndValidate calls in the function body
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsHertzBindCall(callExpr) {
				if reqType := a.ExtractTypeFromCallExpr(callExpr); reqType != nil {
					found = reqType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractHertzResponseType extracts response type from Hertz handler AST
func (a *ASTAnalyzer) ExtractHertzResponseType(methodDecl *ast.FuncDecl) reflect.Type {
	// Look for JSON calls in the function body
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsHertzJSONCall(callExpr) {
				if respType := a.ExtractTypeFromCallExpr(callExpr); respType != nil {
					found = respType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractGinRequestType extracts request type from Gin handler AST
func (a *ASTAnalyzer) ExtractGinRequestType(methodDecl *ast.FuncDecl) reflect.Type {
	// Look for ShouldBind calls in the function body
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsGinBindCall(callExpr) {
				if reqType := a.ExtractTypeFromCallExpr(callExpr); reqType != nil {
					found = reqType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractGinResponseType extracts response type from Gin handler AST
func (a *ASTAnalyzer) ExtractGinResponseType(methodDecl *ast.FuncDecl) reflect.Type {
	// Look for JSON calls in the function body
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsGinJSONCall(callExpr) {
				if respType := a.ExtractTypeFromCallExpr(callExpr); respType != nil {
					found = respType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractChiHandlerTypes extracts request/response types from a
// net/http-shaped Chi handler (func(w http.ResponseWriter, r *http.Request)).
func (a *ASTAnalyzer) ExtractChiHandlerTypes(methodDecl *ast.FuncDecl, sourceFile string) analyzer.HandlerSchema {
	schema := analyzer.HandlerSchema{}

	if reqType := a.ExtractChiRequestType(methodDecl); reqType != nil {
		schema.RequestSchema = a.schemaGen.GenerateSchemaFromType(reqType)
	}
	if respType := a.ExtractChiResponseType(methodDecl); respType != nil {
		schema.ResponseSchema = a.schemaGen.GenerateSchemaFromType(respType)
	}

	a.fillBodyDerivedFields(methodDecl, &schema)

	return schema
}

// ExtractFiberHandlerTypes extracts request/response types from a Fiber
// handler (func(c *fiber.Ctx) error).
func (a *ASTAnalyzer) ExtractFiberHandlerTypes(methodDecl *ast.FuncDecl, sourceFile string) analyzer.HandlerSchema {
	schema := analyzer.HandlerSchema{}

	if reqType := a.ExtractFiberRequestType(methodDecl); reqType != nil {
		schema.RequestSchema = a.schemaGen.GenerateSchemaFromType(reqType)
	}
	if respType := a.ExtractFiberResponseType(methodDecl); respType != nil {
		schema.ResponseSchema = a.schemaGen.GenerateSchemaFromType(respType)
	}

	a.fillBodyDerivedFields(methodDecl, &schema)

	return schema
}

// ExtractChiRequestType looks for json.NewDecoder(r.Body).Decode(&x) calls.
func (a *ASTAnalyzer) ExtractChiRequestType(methodDecl *ast.FuncDecl) reflect.Type {
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsChiBindCall(callExpr) {
				if reqType := a.ExtractTypeFromCallExpr(callExpr); reqType != nil {
					found = reqType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractChiResponseType looks for json.NewEncoder(w).Encode(x) calls.
func (a *ASTAnalyzer) ExtractChiResponseType(methodDecl *ast.FuncDecl) reflect.Type {
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsChiJSONCall(callExpr) {
				if respType := a.ExtractTypeFromCallExpr(callExpr); respType != nil {
					found = respType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractFiberRequestType looks for c.BodyParser(&x) calls.
func (a *ASTAnalyzer) ExtractFiberRequestType(methodDecl *ast.FuncDecl) reflect.Type {
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsFiberBindCall(callExpr) {
				if reqType := a.ExtractTypeFromCallExpr(callExpr); reqType != nil {
					found = reqType
					return false
				}
			}
		}
		return true
	})
	return found
}

// ExtractFiberResponseType looks for c.JSON(x) calls.
func (a *ASTAnalyzer) ExtractFiberResponseType(methodDecl *ast.FuncDecl) reflect.Type {
	var found reflect.Type
	ast.Inspect(methodDecl.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if callExpr, ok := n.(*ast.CallExpr); ok {
			if a.IsFiberJSONCall(callExpr) {
				if respType := a.ExtractTypeFromCallExpr(callExpr); respType != nil {
					found = respType
					return false
				}
			}
		}
		return true
	})
	return found
}

// IsChiBindCall checks for a json.Decoder.Decode call, Chi's idiomatic
// net/http-native request-binding shape.
func (a *ASTAnalyzer) IsChiBindCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "Decode"
	}
	return false
}

// IsChiJSONCall checks for a json.Encoder.Encode call.
func (a *ASTAnalyzer) IsChiJSONCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "Encode"
	}
	return false
}

// IsFiberBindCall checks if a call expression is a Fiber BodyParser call.
func (a *ASTAnalyzer) IsFiberBindCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "BodyParser"
	}
	return false
}

// IsFiberJSONCall checks if a call expression is a Fiber JSON response call.
func (a *ASTAnalyzer) IsFiberJSONCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "JSON"
	}
	return false
}

// IsHertzBindCall checks if a call expression is a Hertz BindAndValidate call
func (a *ASTAnalyzer) IsHertzBindCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "BindAndValidate"
	}
	return false
}

// IsHertzJSONCall checks if a call expression is a Hertz JSON call
func (a *ASTAnalyzer) IsHertzJSONCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "JSON"
	}
	return false
}

// IsGinBindCall checks if a call expression is a Gin ShouldBind call
func (a *ASTAnalyzer) IsGinBindCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "ShouldBind" || selExpr.Sel.Name == "ShouldBindJSON"
	}
	return false
}

// IsGinJSONCall checks if a call expression is a Gin JSON call
func (a *ASTAnalyzer) IsGinJSONCall(callExpr *ast.CallExpr) bool {
	if selExpr, ok := callExpr.Fun.(*ast.SelectorExpr); ok {
		return selExpr.Sel.Name == "JSON"
	}
	return false
}

// ExtractTypeFromCallExpr extracts type information from a call expression
func (a *ASTAnalyzer) ExtractTypeFromCallExpr(callExpr *ast.CallExpr) reflect.Type {
	if len(callExpr.Args) == 0 {
		return nil
	}

	// Look for address-of operator (&) for struct types
	if unaryExpr, ok := callExpr.Args[0].(*ast.UnaryExpr); ok && unaryExpr.Op == token.AND {
		if compositeLit, ok := unaryExpr.X.(*ast.CompositeLit); ok {
			return a.ExtractTypeFromCompositeLit(compositeLit)
		}
	}

	// Direct composite literal
	if compositeLit, ok := callExpr.Args[0].(*ast.CompositeLit); ok {
		return a.ExtractTypeFromCompositeLit(compositeLit)
	}

	return nil
}

// ExtractTypeFromCompositeLit extracts type from composite literal
func (a *ASTAnalyzer) ExtractTypeFromCompositeLit(compositeLit *ast.CompositeLit) reflect.Type {
	switch typeExpr := compositeLit.Type.(type) {
	case *ast.Ident:
		// Simple type name
		return a.typeRegistry.GetType("", typeExpr.Name)
	case *ast.SelectorExpr:
		// Qualified type like pkg.Type
		if pkgIdent, ok := typeExpr.X.(*ast.Ident); ok {
			return a.typeRegistry.GetType(pkgIdent.Name, typeExpr.Sel.Name)
		}
	}
	return nil
}

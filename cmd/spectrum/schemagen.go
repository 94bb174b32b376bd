package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// schemaAnnotation is a //go:generate spectrum-schema directive found in
// source, naming the request/response types a handler uses so its
// schema can be pre-generated at build time instead of analyzed at
// runtime.
type schemaAnnotation struct {
	HandlerName  string `json:"handlerName"`
	RequestType  string `json:"requestType,omitempty"`
	ResponseType string `json:"responseType,omitempty"`
	FilePath     string `json:"filePath"`
	LineNumber   int    `json:"lineNumber"`
}

// schemaFile is the on-disk JSON representation written for each
// annotated handler under the configured schema directory.
type schemaFile struct {
	HandlerName    string                 `json:"handlerName"`
	RequestSchema  map[string]interface{} `json:"requestSchema,omitempty"`
	ResponseSchema map[string]interface{} `json:"responseSchema,omitempty"`
}

// packageContext tracks the current package directory while resolving
// nested struct references, so a field whose type is another struct in
// the same or a different package can be expanded recursively without
// looping on a cycle.
type packageContext struct {
	RootSearchDir      string
	CurrentPackageDir  string
	CurrentPackageName string
	VisitedTypes       map[string]bool
}

// runSchemaExtract implements `spectrum schema extract`: it walks the
// given Go source files for //go:generate spectrum-schema annotations
// (or, given explicit -request/-response flags, a single handler) and
// writes a pre-baked JSON schema file per handler into outputDir. This
// complements the runtime analyzer — a production image that ships only
// the compiled binary can serve these pre-generated schemas without any
// .go source checked out alongside it (see Config.DisableASTAnalysis).
func runSchemaExtract(args []string, outputDir, requestType, responseType, handlerName string, verbose bool) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one Go file must be specified")
	}

	expanded := make([]string, len(args))
	for i, arg := range args {
		if arg != "." {
			expanded[i] = arg
			continue
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		files, err := filepath.Glob(filepath.Join(currentDir, "*.go"))
		if err != nil || len(files) == 0 {
			return fmt.Errorf("no Go files found in current directory")
		}
		expanded[i] = files[0]
	}
	args = expanded

	packageRoot, err := findPackageRoot()
	if err != nil {
		return fmt.Errorf("failed to find package root: %w", err)
	}

	outputPath := filepath.Join(packageRoot, outputDir)
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if requestType != "" || responseType != "" || handlerName != "" {
		return extractSingle(args, outputPath, requestType, responseType, handlerName, verbose)
	}
	return extractAnnotated(args, outputPath, verbose)
}

func extractSingle(args []string, outputPath, requestType, responseType, handlerName string, verbose bool) error {
	if handlerName == "" {
		handlerName = extractHandlerNameFromFile(args[0])
	}
	if handlerName == "" {
		if requestType != "" {
			parts := strings.Split(requestType, ".")
			if len(parts) > 1 {
				handlerName = strings.TrimSuffix(parts[1], "Request") + "Handler"
			}
		} else if responseType != "" {
			parts := strings.Split(responseType, ".")
			if len(parts) > 1 {
				handlerName = strings.TrimSuffix(parts[1], "Response") + "Handler"
			}
		}
	}
	if handlerName == "" {
		return fmt.Errorf("handler name is required when using -request/-response flags")
	}

	annotation := schemaAnnotation{
		HandlerName:  handlerName,
		RequestType:  requestType,
		ResponseType: responseType,
		FilePath:     args[0],
		LineNumber:   1,
	}

	if verbose {
		log.Printf("generating schema for handler: %s", handlerName)
	}
	if err := generateSchemaFile(annotation, outputPath, verbose); err != nil {
		return fmt.Errorf("generating schema for %s: %w", handlerName, err)
	}
	log.Printf("generated 1 schema file in %s", outputPath)
	return nil
}

func extractAnnotated(args []string, outputPath string, verbose bool) error {
	var annotations []schemaAnnotation
	for _, filePath := range args {
		found, err := processFile(filePath, verbose)
		if err != nil {
			log.Printf("error processing %s: %v", filePath, err)
			continue
		}
		annotations = append(annotations, found...)
	}

	if verbose {
		log.Printf("found %d schema annotations", len(annotations))
	}

	for _, annotation := range annotations {
		if err := generateSchemaFile(annotation, outputPath, verbose); err != nil {
			log.Printf("error generating schema for %s: %v", annotation.HandlerName, err)
		}
	}

	log.Printf("generated %d schema files in %s", len(annotations), outputPath)
	return nil
}

// processFile parses a Go file and extracts schema annotations.
func processFile(filePath string, verbose bool) ([]schemaAnnotation, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	var annotations []schemaAnnotation
	for _, commentGroup := range node.Comments {
		for _, comment := range commentGroup.List {
			if !strings.Contains(comment.Text, "go:generate") || !strings.Contains(comment.Text, "spectrum-schema") {
				continue
			}
			annotation, err := parseAnnotation(comment.Text, filePath, fset.Position(comment.Pos()).Line)
			if err != nil {
				if verbose {
					log.Printf("warning: failed to parse annotation in %s: %v", filePath, err)
				}
				continue
			}
			name := extractHandlerName(node, comment.Pos())
			if name == "" {
				if verbose {
					log.Printf("warning: could not extract handler name for annotation in %s", filePath)
				}
				continue
			}
			annotation.HandlerName = name
			annotations = append(annotations, *annotation)
		}
	}
	return annotations, nil
}

func parseAnnotation(comment, filePath string, lineNumber int) (*schemaAnnotation, error) {
	cleanComment := strings.TrimSpace(strings.TrimPrefix(comment, "//go:generate"))
	if !strings.Contains(cleanComment, "spectrum-schema") {
		return nil, fmt.Errorf("not a spectrum-schema annotation")
	}
	args := strings.TrimSpace(strings.TrimPrefix(cleanComment, "spectrum-schema"))

	annotation := &schemaAnnotation{FilePath: filePath, LineNumber: lineNumber}

	if m := regexp.MustCompile(`-request\s+(\S+)`).FindStringSubmatch(args); len(m) > 1 {
		annotation.RequestType = m[1]
	}
	if m := regexp.MustCompile(`-response\s+(\S+)`).FindStringSubmatch(args); len(m) > 1 {
		annotation.ResponseType = m[1]
	}
	return annotation, nil
}

func extractHandlerNameFromFile(filePath string) string {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return ""
	}
	for _, commentGroup := range node.Comments {
		for _, comment := range commentGroup.List {
			if strings.Contains(comment.Text, "go:generate") && strings.Contains(comment.Text, "spectrum-schema") {
				if name := extractHandlerName(node, comment.Pos()); name != "" {
					return name
				}
			}
		}
	}
	return ""
}

func extractHandlerName(node *ast.File, commentPos token.Pos) string {
	var handlerName string
	ast.Inspect(node, func(n ast.Node) bool {
		if handlerName != "" {
			return false
		}
		if funcDecl, ok := n.(*ast.FuncDecl); ok && funcDecl.Pos() > commentPos {
			handlerName = funcDecl.Name.Name
			return false
		}
		return true
	})
	return handlerName
}

func generateSchemaFile(annotation schemaAnnotation, outputDir string, verbose bool) error {
	sf := schemaFile{HandlerName: annotation.HandlerName}

	packageRoot, err := findPackageRoot()
	if err != nil {
		return fmt.Errorf("failed to find package root: %w", err)
	}

	if annotation.RequestType != "" {
		schema, err := generateSchemaFromType(annotation.RequestType, packageRoot, verbose)
		if err != nil {
			log.Printf("warning: could not generate request schema for %s: %v", annotation.RequestType, err)
		} else {
			sf.RequestSchema = schema
		}
	}
	if annotation.ResponseType != "" {
		schema, err := generateSchemaFromType(annotation.ResponseType, packageRoot, verbose)
		if err != nil {
			log.Printf("warning: could not generate response schema for %s: %v", annotation.ResponseType, err)
		} else {
			sf.ResponseSchema = schema
		}
	}

	fileName := fmt.Sprintf("%s.json", sanitizeFileName(annotation.HandlerName))
	filePath := filepath.Join(outputDir, fileName)

	jsonData, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	if verbose {
		log.Printf("generated schema file: %s", filePath)
	}
	return nil
}

func isBuiltinType(typeName string) bool {
	builtinTypes := map[string]bool{
		"string": true, "int": true, "int8": true, "int16": true, "int32": true, "int64": true,
		"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
		"float32": true, "float64": true, "bool": true, "byte": true, "rune": true,
		"interface{}": true, "any": true,
	}
	if builtinTypes[typeName] {
		return true
	}
	stdTypes := map[string]bool{
		"time.Time":                true,
		"time.Duration":            true,
		"net/url.URL":              true,
		"encoding/json.RawMessage": true,
		"encoding/json.Number":     true,
		"io.Reader":                true, "io.Writer": true, "io.ReadWriter": true,
		"net/http.Cookie":  true,
		"net/mail.Address": true,
		"math/big.Int":     true, "math/big.Float": true,
	}
	return stdTypes[typeName]
}

func parseComplexTypeExpression(typeName string) (map[string]interface{}, error) {
	if strings.HasPrefix(typeName, "*") {
		return parseComplexTypeExpression(strings.TrimPrefix(typeName, "*"))
	}

	if strings.HasPrefix(typeName, "[]") {
		elementType := strings.TrimPrefix(typeName, "[]")
		elementSchema, err := parseComplexTypeExpression(elementType)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type":        "array",
			"items":       elementSchema,
			"description": fmt.Sprintf("Array of %s", elementType),
		}, nil
	}

	if strings.HasPrefix(typeName, "map[") {
		matches := regexp.MustCompile(`map\[([^\]]+)\](.+)`).FindStringSubmatch(typeName)
		if len(matches) != 3 {
			return nil, fmt.Errorf("invalid map type format: %s", typeName)
		}
		keyType, valueType := matches[1], matches[2]
		if keyType != "string" {
			return map[string]interface{}{
				"type":        "object",
				"description": fmt.Sprintf("Map with %s keys (non-string keys not supported in OpenAPI)", keyType),
			}, nil
		}
		valueSchema, err := parseComplexTypeExpression(valueType)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type":                 "object",
			"additionalProperties": valueSchema,
		}, nil
	}

	if isBuiltinType(typeName) {
		return generateBasicTypeSchema(typeName), nil
	}

	if strings.Contains(typeName, ".") {
		parts := strings.Split(typeName, ".")
		if len(parts) == 2 {
			packageName, typeNameOnly := parts[0], parts[1]
			switch {
			case packageName == "time" && typeNameOnly == "Time":
				return generateBasicTypeSchema("time.Time"), nil
			case packageName == "time" && typeNameOnly == "Duration":
				return map[string]interface{}{"type": "string", "format": "duration", "description": "Time duration"}, nil
			case packageName == "net/url" && typeNameOnly == "URL":
				return map[string]interface{}{"type": "string", "format": "uri", "description": "URL"}, nil
			case packageName == "encoding/json" && typeNameOnly == "RawMessage":
				return map[string]interface{}{"type": "object", "description": "Raw JSON message"}, nil
			case packageName == "encoding/json" && typeNameOnly == "Number":
				return map[string]interface{}{"type": "number", "description": "JSON number"}, nil
			case packageName == "io" && (typeNameOnly == "Reader" || typeNameOnly == "Writer" || typeNameOnly == "ReadWriter"):
				return map[string]interface{}{"type": "string", "format": "binary", "description": fmt.Sprintf("IO %s", typeNameOnly)}, nil
			case packageName == "net/http" && typeNameOnly == "Cookie":
				return map[string]interface{}{"type": "object", "description": "HTTP cookie"}, nil
			case packageName == "net/mail" && typeNameOnly == "Address":
				return map[string]interface{}{"type": "string", "format": "email", "description": "Email address"}, nil
			case packageName == "math/big" && (typeNameOnly == "Int" || typeNameOnly == "Float"):
				return map[string]interface{}{"type": "string", "description": fmt.Sprintf("Big %s number", typeNameOnly)}, nil
			}
		}
	}

	return map[string]interface{}{
		"type":        "object",
		"description": fmt.Sprintf("Unknown type: %s", typeName),
	}, nil
}

func generateSchemaFromType(typeName, searchDir string, verbose bool) (map[string]interface{}, error) {
	if verbose {
		log.Printf("analyzing type: %s", typeName)
	}

	if !strings.Contains(typeName, ".") || isBuiltinType(typeName) {
		return parseComplexTypeExpression(typeName)
	}

	parts := strings.Split(typeName, ".")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid type name format: %s, expected package.TypeName", typeName)
	}
	packageName, structName := parts[0], parts[1]

	fullTypeName := fmt.Sprintf("%s.%s", packageName, structName)
	if isBuiltinType(fullTypeName) {
		return parseComplexTypeExpression(fullTypeName)
	}

	structDef, err := findStructDefinition(packageName, structName, searchDir, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to find struct definition: %w", err)
	}

	packageRoot, err := findPackageRoot()
	if err != nil {
		packageRoot = "."
	}

	packageDirs, err := findPackageDirectories(packageName, searchDir, verbose)
	var targetPackageDir string
	if err == nil && len(packageDirs) > 0 {
		targetPackageDir = packageDirs[0]
		for _, dir := range packageDirs {
			if structExistsInDirectory(structName, dir, packageName) {
				targetPackageDir = dir
				break
			}
		}
	} else {
		targetPackageDir = searchDir
	}

	context := &packageContext{
		RootSearchDir:      packageRoot,
		CurrentPackageDir:  targetPackageDir,
		CurrentPackageName: packageName,
		VisitedTypes:       make(map[string]bool),
	}

	return generateStructSchemaWithContext(structDef, context), nil
}

func findPackageDirectories(packageName, searchDir string, verbose bool) ([]string, error) {
	var packageDirs []string
	err := filepath.Walk(searchDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			dirName := filepath.Base(path)
			if strings.HasPrefix(dirName, ".") || dirName == "vendor" || dirName == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.PackageClauseOnly)
		if err != nil {
			return nil
		}
		if node.Name.Name == packageName {
			dir := filepath.Dir(path)
			if !slices.Contains(packageDirs, dir) {
				packageDirs = append(packageDirs, dir)
				if verbose {
					log.Printf("found package directory: %s", dir)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory tree: %w", err)
	}
	return packageDirs, nil
}

func findStructDefinition(packageName, structName, searchDir string, verbose bool) (*ast.StructType, error) {
	packageDirs, err := findPackageDirectories(packageName, searchDir, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to find package directories: %w", err)
	}
	if len(packageDirs) == 0 {
		return nil, fmt.Errorf("no directories found for package %s", packageName)
	}

	for _, packageDir := range packageDirs {
		packageFiles, err := filepath.Glob(filepath.Join(packageDir, "*.go"))
		if err != nil {
			continue
		}
		for _, file := range packageFiles {
			if structDef, err := findStructInFile(file, packageName, structName); err == nil {
				return structDef, nil
			}
		}
	}

	files, err := filepath.Glob(filepath.Join(searchDir, "**/*.go"))
	if err != nil {
		return nil, fmt.Errorf("struct %s.%s not found in package (searched %d directories) and fallback search failed: %w",
			packageName, structName, len(packageDirs), err)
	}
	for _, file := range files {
		if structDef, err := findStructInFile(file, packageName, structName); err == nil {
			return structDef, nil
		}
	}

	return nil, fmt.Errorf("struct %s.%s not found in package (searched %d directories and %d total files)",
		packageName, structName, len(packageDirs), len(files))
}

func findStructInFile(filePath, packageName, structName string) (*ast.StructType, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}
	if node.Name.Name != packageName {
		return nil, fmt.Errorf("wrong package name: %s, expected %s", node.Name.Name, packageName)
	}

	var foundStruct *ast.StructType
	ast.Inspect(node, func(n ast.Node) bool {
		if foundStruct != nil {
			return false
		}
		if typeSpec, ok := n.(*ast.TypeSpec); ok && typeSpec.Name.Name == structName {
			if structType, ok := typeSpec.Type.(*ast.StructType); ok {
				foundStruct = structType
				return false
			}
		}
		return true
	})
	if foundStruct == nil {
		return nil, fmt.Errorf("struct %s not found in file", structName)
	}
	return foundStruct, nil
}

func generateStructSchemaWithContext(structDef *ast.StructType, context *packageContext) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": make(map[string]interface{}),
		"required":   make([]string, 0),
	}

	for _, field := range structDef.Fields.List {
		for _, name := range field.Names {
			fieldSchema := resolveFieldTypeSchema(field.Type, context)

			fieldName := getJSONTagName(field, name.Name)
			if fieldName == name.Name {
				fieldName = getFormTagName(field, name.Name)
			}
			schema["properties"].(map[string]interface{})[fieldName] = fieldSchema

			if hasRequiredTag(field) {
				schema["required"] = append(schema["required"].([]string), fieldName)
			}
		}
	}

	return schema
}

func resolveFieldTypeSchema(expr ast.Expr, context *packageContext) map[string]interface{} {
	switch t := expr.(type) {
	case *ast.Ident:
		if isBuiltinType(t.Name) {
			return generateBasicTypeSchema(t.Name)
		}
		return resolveNestedStructInCurrentPackage(t.Name, context)

	case *ast.StructType:
		return generateStructSchemaWithContext(t, context)

	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return resolveCrossPackageStruct(x.Name, t.Sel.Name, context)
		}
		return map[string]interface{}{"type": "object", "description": "External type"}

	case *ast.ArrayType:
		elemSchema := resolveFieldTypeSchema(t.Elt, context)
		return map[string]interface{}{
			"type":        "array",
			"items":       elemSchema,
			"description": fmt.Sprintf("Array of %s", getTypeDescription(elemSchema)),
		}

	case *ast.MapType:
		valueSchema := resolveFieldTypeSchema(t.Value, context)
		return map[string]interface{}{"type": "object", "additionalProperties": valueSchema}

	case *ast.StarExpr:
		return resolveFieldTypeSchema(t.X, context)

	case *ast.InterfaceType:
		return map[string]interface{}{"type": "object", "description": "Interface type"}

	default:
		return map[string]interface{}{"type": "object", "description": "Unknown type"}
	}
}

func generateBasicTypeSchema(typeName string) map[string]interface{} {
	switch typeName {
	case "string":
		return map[string]interface{}{"type": "string"}
	case "int", "int8", "int16", "int32", "int64":
		return map[string]interface{}{"type": "integer", "format": "int64"}
	case "uint", "uint8", "uint16", "uint32", "uint64":
		return map[string]interface{}{"type": "integer", "format": "int64"}
	case "float32", "float64":
		return map[string]interface{}{"type": "number", "format": "double"}
	case "bool":
		return map[string]interface{}{"type": "boolean"}
	case "time.Time":
		return map[string]interface{}{"type": "string", "format": "date-time"}
	default:
		return map[string]interface{}{"type": "object", "description": fmt.Sprintf("Type: %s", typeName)}
	}
}

func getJSONTagName(field *ast.Field, defaultName string) string {
	if field.Tag == nil {
		return defaultName
	}
	tagValue := strings.Trim(field.Tag.Value, "`")
	if !strings.Contains(tagValue, "json:") {
		return defaultName
	}
	jsonTag := regexp.MustCompile(`json:"([^"]*)"`).FindStringSubmatch(tagValue)
	if len(jsonTag) > 1 {
		if parts := strings.Split(jsonTag[1], ","); parts[0] != "" {
			return parts[0]
		}
	}
	return defaultName
}

func getFormTagName(field *ast.Field, defaultName string) string {
	if field.Tag == nil {
		return defaultName
	}
	tagValue := strings.Trim(field.Tag.Value, "`")
	if !strings.Contains(tagValue, "form:") {
		return defaultName
	}
	formTag := regexp.MustCompile(`form:"([^"]*)"`).FindStringSubmatch(tagValue)
	if len(formTag) > 1 {
		if parts := strings.Split(formTag[1], ","); parts[0] != "" {
			return parts[0]
		}
	}
	return defaultName
}

func hasRequiredTag(field *ast.Field) bool {
	if field.Tag == nil {
		return false
	}
	tagValue := strings.Trim(field.Tag.Value, "`")
	if strings.Contains(tagValue, "json:") {
		if jsonTag := regexp.MustCompile(`json:"([^"]*)"`).FindStringSubmatch(tagValue); len(jsonTag) > 1 {
			return !strings.Contains(jsonTag[1], "omitempty")
		}
	}
	if strings.Contains(tagValue, "form:") {
		if formTag := regexp.MustCompile(`form:"([^"]*)"`).FindStringSubmatch(tagValue); len(formTag) > 1 {
			return !strings.Contains(formTag[1], "omitempty")
		}
	}
	return false
}

func findPackageRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	dir := currentDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("go.mod not found in directory tree")
}

func sanitizeFileName(handlerName string) string {
	safeName := strings.ReplaceAll(handlerName, "/", "_")
	safeName = strings.ReplaceAll(safeName, "\\", "_")
	safeName = strings.ReplaceAll(safeName, ":", "_")
	safeName = strings.ReplaceAll(safeName, "*", "_")
	safeName = regexp.MustCompile(`[^\w-]`).ReplaceAllString(safeName, "_")
	return strings.TrimSpace(safeName)
}

func getTypeDescription(schema map[string]interface{}) string {
	if desc, ok := schema["description"].(string); ok {
		return desc
	}
	if typeStr, ok := schema["type"].(string); ok {
		return typeStr
	}
	return "unknown"
}

func resolveNestedStructInCurrentPackage(structName string, context *packageContext) map[string]interface{} {
	fullTypeName := fmt.Sprintf("%s.%s", context.CurrentPackageName, structName)

	if context.VisitedTypes[fullTypeName] {
		return map[string]interface{}{"type": "object", "description": fmt.Sprintf("Circular reference to %s", fullTypeName)}
	}

	currentPackageName := context.CurrentPackageName
	if currentPackageName == "" && context.CurrentPackageDir != context.RootSearchDir {
		packageFiles, err := filepath.Glob(filepath.Join(context.CurrentPackageDir, "*.go"))
		if err == nil && len(packageFiles) > 0 {
			fset := token.NewFileSet()
			if node, err := parser.ParseFile(fset, packageFiles[0], nil, parser.PackageClauseOnly); err == nil {
				currentPackageName = node.Name.Name
				context.CurrentPackageName = currentPackageName
			}
		}
	}

	structDef, err := findStructInPackageDirectory(structName, context.CurrentPackageDir, currentPackageName)
	if err == nil && structDef != nil {
		if context.CurrentPackageName != currentPackageName {
			fullTypeName = fmt.Sprintf("%s.%s", currentPackageName, structName)
		}
		context.VisitedTypes[fullTypeName] = true
		schema := generateStructSchemaWithContext(structDef, context)
		delete(context.VisitedTypes, fullTypeName)
		return schema
	}

	return map[string]interface{}{
		"type":        "object",
		"description": fmt.Sprintf("Type: %s (not found in package %s at %s)", structName, currentPackageName, context.CurrentPackageDir),
	}
}

func resolveCrossPackageStruct(packageName, typeName string, context *packageContext) map[string]interface{} {
	fullTypeName := packageName + "." + typeName

	if packageName == "time" && typeName == "Time" {
		return map[string]interface{}{"type": "string", "format": "date-time"}
	}

	if context.VisitedTypes[fullTypeName] {
		return map[string]interface{}{"type": "object", "description": fmt.Sprintf("Circular reference to %s", fullTypeName)}
	}

	structDef, err := findStructDefinition(packageName, typeName, context.RootSearchDir, false)
	if err == nil && structDef != nil {
		packageDirs, err := findPackageDirectories(packageName, context.RootSearchDir, false)
		var targetPackageDir string
		if err == nil && len(packageDirs) > 0 {
			targetPackageDir = packageDirs[0]
		} else {
			targetPackageDir = context.RootSearchDir
		}

		actualPackageName := packageName
		if targetPackageDir != context.RootSearchDir {
			packageFiles, err := filepath.Glob(filepath.Join(targetPackageDir, "*.go"))
			if err == nil && len(packageFiles) > 0 {
				fset := token.NewFileSet()
				if node, err := parser.ParseFile(fset, packageFiles[0], nil, parser.PackageClauseOnly); err == nil {
					actualPackageName = node.Name.Name
				}
			}
		}

		newContext := &packageContext{
			RootSearchDir:      context.RootSearchDir,
			CurrentPackageDir:  targetPackageDir,
			CurrentPackageName: actualPackageName,
			VisitedTypes:       context.VisitedTypes,
		}

		context.VisitedTypes[fullTypeName] = true
		schema := generateStructSchemaWithContext(structDef, newContext)
		delete(context.VisitedTypes, fullTypeName)
		return schema
	}

	return map[string]interface{}{
		"type":        "object",
		"description": fmt.Sprintf("External type: %s.%s", packageName, typeName),
	}
}

func findStructInPackageDirectory(structName, packageDir, expectedPackageName string) (*ast.StructType, error) {
	packageFiles, err := filepath.Glob(filepath.Join(packageDir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("failed to find Go files in %s: %w", packageDir, err)
	}
	if len(packageFiles) == 0 {
		return nil, fmt.Errorf("no Go files found in directory %s", packageDir)
	}

	if expectedPackageName != "" {
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, packageFiles[0], nil, parser.PackageClauseOnly)
		if err != nil || node.Name.Name != expectedPackageName {
			return nil, fmt.Errorf("package name mismatch in directory %s", packageDir)
		}
	}

	for _, file := range packageFiles {
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
		if err != nil {
			continue
		}
		var foundStruct *ast.StructType
		ast.Inspect(node, func(n ast.Node) bool {
			if foundStruct != nil {
				return false
			}
			if typeSpec, ok := n.(*ast.TypeSpec); ok && typeSpec.Name.Name == structName {
				if structType, ok := typeSpec.Type.(*ast.StructType); ok {
					foundStruct = structType
					return false
				}
			}
			return true
		})
		if foundStruct != nil {
			return foundStruct, nil
		}
	}

	return nil, fmt.Errorf("struct %s not found in package directory %s", structName, packageDir)
}

func structExistsInDirectory(structName, packageDir, expectedPackageName string) bool {
	_, err := findStructInPackageDirectory(structName, packageDir, expectedPackageName)
	return err == nil
}

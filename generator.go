package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/gofiber/fiber/v2"

	"github.com/zainokta/spectrum/analyzer"
	"github.com/zainokta/spectrum/cache"
	"github.com/zainokta/spectrum/errs"
	"github.com/zainokta/spectrum/integration"
	"github.com/zainokta/spectrum/logger"
	"github.com/zainokta/spectrum/model"
	"github.com/zainokta/spectrum/parallel"
	"github.com/zainokta/spectrum/parser"
	"github.com/zainokta/spectrum/spec"
)

// Generator is the main OpenAPI specification generator
type Generator struct {
	config          *Config
	logger          logger.Logger
	discoverer      integration.RouteDiscoverer
	pathParser      *parser.PathParser
	overrideManager *OverrideManager
	structParser    *parser.StructParser
	schemaRegistry  *analyzer.SchemaRegistry
	handlerAnalyzer analyzer.HandlerAnalyzer
	authAnalyzer    *analyzer.AuthenticationAnalyzer
	cache           *cache.Store
	workers         int
	spec            *spec.Document
}

// NewGenerator creates a new OpenAPI generator with options
func NewGenerator(framework any, httpServer integration.HTTPServer, options *Options) (*Generator, error) {
	var discoverer integration.RouteDiscoverer
	var err error

	// Use custom discoverer if provided, otherwise auto-discover
	if options.customDiscoverer != nil {
		discoverer = options.customDiscoverer
	} else {
		// Create framework-agnostic discoverer
		discoverer, err = integration.NewAutoDiscoverer(framework)
		if err != nil {
			return nil, fmt.Errorf("failed to create route discoverer: %w", err)
		}
	}

	// Create components
	pathParser := parser.NewPathParser()
	overrideManager := NewOverrideManager()
	structParser := parser.NewStructParser()
	schemaRegistry := analyzer.NewSchemaRegistry()
	handlerAnalyzer := newHandlerAnalyzerFor(framework)
	docCache := cache.NewStore(options.cacheDir, options.logger)

	generator := &Generator{
		config:          options.config,
		logger:          options.logger,
		discoverer:      discoverer,
		pathParser:      pathParser,
		overrideManager: overrideManager,
		structParser:    structParser,
		schemaRegistry:  schemaRegistry,
		handlerAnalyzer: handlerAnalyzer,
		authAnalyzer:    analyzer.NewAuthenticationAnalyzer(),
		cache:           docCache,
		workers:         options.workers,
	}

	// Initialize common DTO schemas
	generator.structParser.RegisterDTOSchemas()
	generator.schemaRegistry.RegisterCommonDTOs()

	return generator, nil
}

// newHandlerAnalyzerFor picks the HandlerAnalyzer matching the host
// framework, mirroring integration.NewAutoDiscoverer's type switch.
// Falls back to the Hertz analyzer (the teacher's original default)
// for a custom discoverer or an unrecognized framework value, since a
// generic AST-based fallback still recovers most handler shapes.
func newHandlerAnalyzerFor(framework any) analyzer.HandlerAnalyzer {
	switch framework.(type) {
	case *gin.Engine:
		return integration.NewGinHandlerAnalyzer()
	case chi.Router:
		return integration.NewChiHandlerAnalyzer()
	case *fiber.App:
		return integration.NewFiberHandlerAnalyzer()
	case *server.Hertz:
		return integration.NewHertzHandlerAnalyzer()
	default:
		return integration.NewHertzHandlerAnalyzer()
	}
}

// GetOverrideManager returns the override manager for customization
func (g *Generator) GetOverrideManager() *OverrideManager {
	return g.overrideManager
}

// GetSchemaRegistry returns the schema registry for manual schema registration
func (g *Generator) GetSchemaRegistry() *analyzer.SchemaRegistry {
	return g.schemaRegistry
}

// GetLogger returns the configured logger instance
func (g *Generator) GetLogger() logger.Logger {
	return g.logger
}

// GetCache returns the documentation cache backing route analysis.
func (g *Generator) GetCache() *cache.Store {
	return g.cache
}

// routeResult is the per-route output of analyzing and building an
// OpenAPI operation. Building this is the unit of work fanned out by
// parallel.Process; merging results into g.spec happens afterward on
// a single goroutine so the shared Paths/tag maps never see concurrent
// writes.
type routeResult struct {
	Method    string
	Path      string
	Tag       string
	Operation spec.Operation
}

// GenerateSpec generates the complete OpenAPI specification
func (g *Generator) GenerateSpec() (*spec.Document, error) {
	// Discover routes from the framework
	routes, err := g.discoverer.DiscoverRoutes()
	if err != nil {
		return nil, errs.NewRouteLoadingError(g.discoverer.GetFrameworkName(), "failed to discover routes", err)
	}

	g.logger.Info("Discovered routes", "count", len(routes), "framework", g.discoverer.GetFrameworkName())

	// Initialize OpenAPI spec
	g.spec = &spec.Document{
		OpenAPI: "3.0.3",
		Info: spec.Info{
			Title:       g.config.Title,
			Description: g.config.Description,
			Version:     g.config.Version,
			Contact: spec.Contact{
				Name:  g.config.Contact.Name,
				Email: g.config.Contact.Email,
				URL:   g.config.Contact.URL,
			},
		},
		Servers: []spec.Server{
			{
				URL:         g.config.GetServerURL(),
				Description: g.config.GetServerDescription(),
			},
		},
		Paths: make(map[string]spec.PathItem),
		Components: spec.Components{
			Schemas:         make(map[string]spec.Schema),
			SecuritySchemes: g.generateSecuritySchemes(),
		},
		Security: []spec.SecurityRequirement{
			{
				"bearerAuth": []string{},
			},
		},
		Tags: make([]spec.Tag, 0),
	}

	collector := errs.NewCollector()
	results := parallel.Process(context.Background(), routes, parallel.Options{MaxWorkers: g.workers}, func(_ context.Context, route model.Route) (routeResult, error) {
		return g.buildRouteResult(route)
	})

	tags := make(map[string]bool)
	for _, r := range results {
		if r.Err != nil {
			collector.Add(r.Err)
			g.logger.Warn("Failed to process route", "error", r.Err)
			continue
		}
		tags[r.Value.Tag] = true
		g.addOperationToSpec(r.Value.Method, r.Value.Path, r.Value.Operation)
	}
	if collector.HasErrors() {
		g.logger.Warn("Route processing completed with errors", "failed_routes", collector.Len(), "by_stage", collector.CountByStage())
	}

	// Generate tags from collected unique tags
	g.spec.Tags = g.generateTagsFromSet(tags)

	// Add schemas from both struct parser and schema registry
	allSchemas := make(map[string]spec.Schema)

	// Add schemas from struct parser (basic types)
	for name, schema := range g.structParser.GetSchemas() {
		allSchemas[name] = schema
	}

	// Add schemas from schema registry (handler DTOs)
	for name, schema := range g.schemaRegistry.GetAllSchemas() {
		allSchemas[name] = schema
	}

	for name, schema := range allSchemas {
		if err := analyzer.SelfCheck(schema); err != nil {
			g.logger.Warn("Schema fragment failed self-check", "schema", name, "error", err)
		}
	}

	g.spec.Components.Schemas = allSchemas

	g.logger.Info("Generated OpenAPI spec",
		"paths", len(g.spec.Paths),
		"tags", len(g.spec.Tags),
		"schemas", len(g.spec.Components.Schemas))

	return g.spec, nil
}

// buildRouteResult analyzes a single route and builds its OpenAPI
// operation, memoized in the documentation cache when the route names
// a source file (dependency-tracked: a later edit to that file busts
// just this route's entry, not the whole cache).
func (g *Generator) buildRouteResult(route model.Route) (routeResult, error) {
	key := fmt.Sprintf("route:%s:%s", route.Method, route.Path)
	deps := []string{}
	if route.FilePath != "" {
		deps = append(deps, route.FilePath)
	}

	compute := func() (routeResult, error) {
		return g.analyzeRoute(route)
	}

	if len(deps) == 0 {
		return compute()
	}
	return cache.Remember(g.cache, key, deps, compute)
}

// analyzeRoute does the actual handler analysis and operation
// construction for a route, registering any discovered request/response
// schemas with the schema registry as a side effect.
func (g *Generator) analyzeRoute(route model.Route) (routeResult, error) {
	if route.Handler != nil {
		handlerSchema := g.handlerAnalyzer.AnalyzeHandler(route.Handler)

		if handlerSchema.RequestSchema.Type != "" {
			g.schemaRegistry.RegisterRequestSchema(route.Method, route.Path, handlerSchema.RequestSchema)
		}
		if handlerSchema.ResponseSchema.Type != "" {
			g.schemaRegistry.RegisterResponseSchema(route.Method, route.Path, handlerSchema.ResponseSchema)
		}
	}

	parsed := g.pathParser.ParseRoute(route.Method, route.Path)
	metadata := g.overrideManager.GetMetadata(route.Method, route.Path, parsed)
	operation := g.createOperation(route, metadata)

	return routeResult{
		Method:    route.Method,
		Path:      route.Path,
		Tag:       metadata.Tags,
		Operation: operation,
	}, nil
}

// createOperation creates an OpenAPI operation from route information
func (g *Generator) createOperation(route model.Route, metadata RouteMetadata) spec.Operation {
	handlerSchema := g.handlerAnalyzer.AnalyzeHandler(route.Handler)
	auth := g.classifyAuth(route)

	operation := spec.Operation{
		Tags:        []string{metadata.Tags},
		Summary:     metadata.Summary,
		Description: metadata.Description,
		OperationID: g.generateOperationID(route.Method, route.Path),
		Parameters:  g.extractParameters(route.Path, handlerSchema),
		Responses:   g.generateResponses(handlerSchema, auth),
	}

	// Add request body for methods that typically have one
	if g.hasRequestBody(route.Method) {
		requestBody := g.generateRequestBodyFromSchema(handlerSchema)
		operation.RequestBody = &requestBody
	}

	if auth.RequiresAuth() {
		operation.Security = []spec.SecurityRequirement{
			{auth.SchemeName: []string{}},
		}
	} else {
		operation.Security = []spec.SecurityRequirement{} // No auth required
	}

	return operation
}

// classifyAuth resolves a route's security requirement via
// AuthenticationAnalyzer when the discoverer populated route.Middleware,
// falling back to the static public-path allowlist otherwise (the Gin
// and Hertz adapters do not surface a route's middleware chain, so the
// fallback remains load-bearing in practice; see DESIGN.md).
func (g *Generator) classifyAuth(route model.Route) analyzer.AuthOutcome {
	if len(route.Middleware) > 0 {
		return g.authAnalyzer.Classify(route.Middleware)
	}
	if g.isPublicEndpoint(route.Path) {
		return analyzer.AuthOutcome{}
	}
	return analyzer.AuthOutcome{SchemeName: "bearerAuth"}
}

// extractParameters extracts path, query, and header parameters for
// path, merging the path placeholders found in the route template with
// whatever QueryParameterAnalyzer/HeaderParameterAnalyzer recognized in
// handlerSchema and (when the handler paginates) the pagination style's
// implicit parameters. Path parameters win on a name collision, per
// spec.md §4.10 step 3.
func (g *Generator) extractParameters(path string, handlerSchema analyzer.HandlerSchema) []spec.Parameter {
	var params []spec.Parameter
	seen := map[string]bool{}

	// Extract path parameters (e.g., :id, :token)
	paramRegex := regexp.MustCompile(`:(\w+)`)
	matches := paramRegex.FindAllStringSubmatch(path, -1)

	for _, match := range matches {
		if len(match) > 1 {
			paramName := match[1]
			params = append(params, spec.Parameter{
				Name:        paramName,
				In:          "path",
				Required:    true,
				Description: fmt.Sprintf("Path parameter: %s", paramName),
				Schema:      spec.Schema{Type: "string"},
			})
			seen[paramName] = true
		}
	}

	for _, p := range handlerSchema.QueryParameters {
		if !seen[p.Name] {
			params = append(params, modelParamToSpec(p))
			seen[p.Name] = true
		}
	}
	for _, p := range handlerSchema.Pagination.ImplicitParameters() {
		if !seen[p.Name] {
			params = append(params, modelParamToSpec(p))
			seen[p.Name] = true
		}
	}
	for _, p := range handlerSchema.HeaderParameters {
		if !seen[p.Name] {
			params = append(params, modelParamToSpec(p))
			seen[p.Name] = true
		}
	}

	// Add common query parameters for certain endpoints
	if strings.Contains(path, "mfa") && strings.Contains(path, "verify") && !seen["challenge"] {
		params = append(params, spec.Parameter{
			Name:        "challenge",
			In:          "query",
			Required:    true,
			Description: "MFA challenge ID",
			Schema:      spec.Schema{Type: "string"},
		})
	}

	return params
}

// modelParamToSpec converts a model.Parameter (the framework-agnostic
// IR the analyzer package deals in) into its OpenAPI serialization.
func modelParamToSpec(p model.Parameter) spec.Parameter {
	schemaType := p.GoType
	if schemaType == "" {
		schemaType = "string"
	}
	return spec.Parameter{
		Name:        p.Name,
		In:          p.In,
		Required:    p.Required,
		Description: p.Description,
		Schema:      spec.Schema{Type: schemaType, Example: p.Example},
	}
}

// generateResponses generates responses using dynamic schema resolution
func (g *Generator) generateResponses(handlerSchema analyzer.HandlerSchema, auth analyzer.AuthOutcome) map[string]spec.Response {
	responses := make(map[string]spec.Response)

	var successSchema spec.Schema
	if handlerSchema.ResponseSchema.Type != "" {
		successSchema = handlerSchema.ResponseSchema
	} else {
		// Fallback to generic success schema
		successSchema = spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"data":    {Type: "object", Description: "Response data"},
				"message": {Type: "string", Description: "Success message"},
			},
		}
	}

	if handlerSchema.Pagination != analyzer.PaginationNone {
		successSchema = handlerSchema.Pagination.WrapEnvelope(successSchema)
	}

	// Success response
	responses["200"] = spec.Response{
		Description: "Success",
		Content: map[string]spec.MediaType{
			"application/json": {
				Schema: successSchema,
			},
		},
	}

	// Error responses (reuse existing logic)
	errorResponses := g.generateDefaultResponses()
	for code, response := range errorResponses {
		if code != "200" { // Don't override success response
			responses[code] = response
		}
	}

	// A request body carrying validation rules can fail validation.
	if len(handlerSchema.RequestSchema.Required) > 0 {
		responses["422"] = spec.Response{
			Description: "Validation failed",
			Content: map[string]spec.MediaType{
				"application/json": {Schema: g.getValidationErrorSchema()},
			},
		}
	}

	// Additional responses implied by the route's middleware stack
	// (AuthenticationAnalyzer output), e.g. 403 for a role-gated route.
	for _, code := range auth.ExtraResponses {
		key := fmt.Sprintf("%d", code)
		if _, exists := responses[key]; !exists {
			responses[key] = spec.Response{
				Description: http.StatusText(code),
				Content: map[string]spec.MediaType{
					"application/json": {Schema: g.getErrorSchema()},
				},
			}
		}
	}

	return responses
}

// getValidationErrorSchema returns the standard 422 validation-error
// response schema (spec.md §4.10 step 4: "always emit 422 for any route
// with validation").
func (g *Generator) getValidationErrorSchema() spec.Schema {
	return spec.Schema{
		Type: "object",
		Properties: map[string]spec.Schema{
			"error":  {Type: "string", Description: "Error message"},
			"fields": {Type: "object", Description: "Per-field validation errors", AdditionalProperties: &spec.Schema{Type: "array", Items: &spec.Schema{Type: "string"}}},
		},
		Required: []string{"error"},
	}
}

// generateDefaultResponses generates default responses for an operation
func (g *Generator) generateDefaultResponses() map[string]spec.Response {
	responses := make(map[string]spec.Response)

	// Success response
	responses["200"] = spec.Response{
		Description: "Success",
		Content: map[string]spec.MediaType{
			"application/json": {
				Schema: spec.Schema{
					Type: "object",
					Properties: map[string]spec.Schema{
						"data":    {Type: "object", Description: "Response data"},
						"message": {Type: "string", Description: "Success message"},
					},
				},
			},
		},
	}

	// Error responses
	responses["400"] = spec.Response{
		Description: "Bad Request",
		Content: map[string]spec.MediaType{
			"application/json": {
				Schema: g.getErrorSchema(),
			},
		},
	}

	responses["401"] = spec.Response{
		Description: "Unauthorized",
		Content: map[string]spec.MediaType{
			"application/json": {
				Schema: g.getErrorSchema(),
			},
		},
	}

	responses["500"] = spec.Response{
		Description: "Internal Server Error",
		Content: map[string]spec.MediaType{
			"application/json": {
				Schema: g.getErrorSchema(),
			},
		},
	}

	return responses
}

// getErrorSchema returns the standard error schema
func (g *Generator) getErrorSchema() spec.Schema {
	return spec.Schema{
		Type: "object",
		Properties: map[string]spec.Schema{
			"error":   {Type: "string", Description: "Error message"},
			"code":    {Type: "integer", Description: "Error code"},
			"details": {Type: "object", Description: "Additional error details"},
		},
		Required: []string{"error", "code"},
	}
}

// generateRequestBodyFromSchema builds a request body from an already
// resolved handler schema.
func (g *Generator) generateRequestBodyFromSchema(handlerSchema analyzer.HandlerSchema) spec.RequestBody {
	var schema spec.Schema
	if handlerSchema.RequestSchema.Type != "" {
		schema = handlerSchema.RequestSchema
	} else {
		// Fallback to generic schema
		schema = spec.Schema{
			Type: "object",
			Properties: map[string]spec.Schema{
				"data": {Type: "object", Description: "Request data"},
			},
		}
	}

	contentType := "application/json"
	if schemaHasFileField(schema) {
		contentType = "multipart/form-data"
	}

	return spec.RequestBody{
		Required: true,
		Content: map[string]spec.MediaType{
			contentType: {
				Schema: schema,
			},
		},
	}
}

// schemaHasFileField reports whether schema, or any object/array it
// contains, has a binary-string leaf — the file-rule monotonicity
// spec.md §4.9 requires: a single file-bearing field forces the whole
// ancestor object's content type to multipart/form-data rather than
// application/json.
func schemaHasFileField(schema spec.Schema) bool {
	if schema.Type == "string" && schema.Format == "binary" {
		return true
	}
	for _, prop := range schema.Properties {
		if schemaHasFileField(prop) {
			return true
		}
	}
	if schema.Items != nil && schemaHasFileField(*schema.Items) {
		return true
	}
	return false
}

// hasRequestBody determines if an operation should have a request body
func (g *Generator) hasRequestBody(method string) bool {
	return method == "POST" || method == "PUT" || method == "PATCH"
}

// isPublicEndpoint reports whether an endpoint is public (needs no
// authentication)
func (g *Generator) isPublicEndpoint(path string) bool {
	publicPaths := []string{
		"/",
		"/health",
		"/docs",
		"/openapi.json",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/oauth/login",
		"/api/v1/oauth/callback",
		"/api/v1/oauth/providers",
		"/api/v1/auth/password-reset/request",
		"/api/v1/auth/password-reset/confirm",
	}

	for _, publicPath := range publicPaths {
		if path == publicPath || (publicPath != "/" && strings.HasPrefix(path, publicPath)) {
			return true
		}
	}

	// Check for password reset validate endpoint (has path parameter)
	if strings.Contains(path, "/password-reset/validate/") {
		return true
	}

	return false
}

// generateOperationID generates a unique operation ID
func (g *Generator) generateOperationID(method, path string) string {
	// Use path parser to generate consistent ID
	return g.pathParser.GenerateHandlerName(method, path)
}

// addOperationToSpec adds an operation to the OpenAPI spec
func (g *Generator) addOperationToSpec(method, path string, operation spec.Operation) {
	// Get or create path item
	pathItem := g.spec.Paths[path]

	// Add operation based on method
	switch strings.ToUpper(method) {
	case "GET":
		pathItem.Get = &operation
	case "POST":
		pathItem.Post = &operation
	case "PUT":
		pathItem.Put = &operation
	case "PATCH":
		pathItem.Patch = &operation
	case "DELETE":
		pathItem.Delete = &operation
	case "HEAD":
		pathItem.Head = &operation
	case "OPTIONS":
		pathItem.Options = &operation
	case "TRACE":
		pathItem.Trace = &operation
	}

	g.spec.Paths[path] = pathItem
}

// generateTagsFromSet generates tag definitions from collected tags
func (g *Generator) generateTagsFromSet(tags map[string]bool) []spec.Tag {
	var result []spec.Tag

	for tagName := range tags {
		tag := spec.Tag{
			Name:        tagName,
			Description: g.generateTagDescription(tagName),
		}
		result = append(result, tag)
	}

	return result
}

// generateTagDescription generates description for a tag
func (g *Generator) generateTagDescription(tagName string) string {
	descriptions := map[string]string{
		"auth":              "User authentication and session management",
		"authentication":    "User authentication and session management",
		"oauth":             "OAuth 2.0 authentication with external providers",
		"external-auth":     "External authentication providers",
		"user":              "User account management and profile operations",
		"mfa":               "Multi-factor authentication management",
		"multi-factor-auth": "Multi-factor authentication management",
		"password-reset":    "Password reset functionality",
		"system":            "System health and information endpoints",
		"monitoring":        "System monitoring and health checks",
		"info":              "Service information endpoints",
		"security":          "Security-related operations",
	}

	if desc, exists := descriptions[tagName]; exists {
		return desc
	}

	// Generate description from tag name
	caser := cases.Title(language.English)
	return fmt.Sprintf("%s related operations", caser.String(tagName))
}

// generateSecuritySchemes generates security scheme definitions
func (g *Generator) generateSecuritySchemes() map[string]spec.SecurityScheme {
	return map[string]spec.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "JWT Bearer token authentication",
		},
		"apiKeyAuth": {
			Type:        "apiKey",
			In:          "header",
			Name:        "X-API-Key",
			Description: "API key authentication",
		},
		"basicAuth": {
			Type:        "http",
			Scheme:      "basic",
			Description: "HTTP Basic authentication",
		},
	}
}

// ServeSwaggerUI serves the Swagger UI and OpenAPI spec
func (g *Generator) ServeSwaggerUI(h integration.HTTPServer) error {
	// Generate the spec first
	doc, err := g.GenerateSpec()
	if err != nil {
		return fmt.Errorf("failed to generate OpenAPI spec: %w", err)
	}

	var payload any = doc
	if g.config.OpenAPIVersion == "3.1" {
		converted, err := spec.NewConverter31().Convert(*doc)
		if err != nil {
			return fmt.Errorf("failed to convert OpenAPI spec to 3.1: %w", err)
		}
		payload = converted
	}

	// Serve OpenAPI spec JSON
	h.GET("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(payload)
	})

	// Serve Swagger UI
	h.GET("/docs", func(w http.ResponseWriter, r *http.Request) {
		html := g.generateSwaggerHTML()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	})

	g.logger.Info("Swagger UI endpoints registered", "spec_url", "/openapi.json", "docs_url", "/docs")

	return nil
}

// generateSwaggerHTML generates the Swagger UI HTML
func (g *Generator) generateSwaggerHTML() string {
	return `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Auth Service API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.28.1/swagger-ui.css" />
    <link rel="icon" type="image/png" href="https://unpkg.com/swagger-ui-dist@5.28.1/favicon-32x32.png" sizes="32x32" />
    <style>
        html {
            box-sizing: border-box;
            overflow: -moz-scrollbars-vertical;
            overflow-y: scroll;
        }
        *, *:before, *:after {
            box-sizing: inherit;
        }
        body {
            margin: 0;
            background: #fafafa;
        }
        .swagger-ui .info .title {
            color: #3b82f6;
        }
        .swagger-ui .scheme-container {
            background: #f8fafc;
            border: 1px solid #e2e8f0;
        }
        #swagger-ui {
            max-width: 1460px;
            margin: 0 auto;
        }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.28.1/swagger-ui-bundle.js" charset="UTF-8"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5.28.1/swagger-ui-standalone-preset.js" charset="UTF-8"></script>
    <script>
        window.onload = function() {
            console.log('Initializing Swagger UI...');
            
            const ui = SwaggerUIBundle({
                url: '/openapi.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout",
                showExtensions: true,
                showCommonExtensions: true,
                tryItOutEnabled: true,
                onComplete: function() {
                    console.log('Swagger UI loaded successfully');
                },
                onFailure: function(error) {
                    console.error('Failed to load Swagger UI:', error);
                }
            });

            // Test if openapi.json is accessible
            fetch('/openapi.json')
                .then(response => {
                    if (!response.ok) {
                        throw new Error('HTTP ' + response.status + ': ' + response.statusText);
                    }
                    return response.json();
                })
                .then(data => {
                    console.log('OpenAPI spec loaded successfully:', data);
                })
                .catch(error => {
                    console.error('Failed to load OpenAPI spec:', error);
                });
        };
    </script>
</body>
</html>`
}

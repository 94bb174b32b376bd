package integration

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zainokta/spectrum/analyzer"
	"github.com/zainokta/spectrum/integration/common"
	"github.com/zainokta/spectrum/model"
	openapiParser "github.com/zainokta/spectrum/parser"
)

// ChiRouteDiscoverer implements RouteDiscoverer for go-chi. Unlike Gin
// and Hertz, chi.Walk hands us each route's middleware chain directly,
// so this discoverer (like the Fiber one) populates
// model.Route.Middleware (AuthenticationAnalyzer has nothing to work
// with from Gin and Hertz; see DESIGN.md).
type ChiRouteDiscoverer struct {
	router               chi.Router
	handlerNameExtractor *common.HandlerNameExtractor
}

// NewChiRouteDiscoverer creates a new Chi route discoverer.
func NewChiRouteDiscoverer(router chi.Router) *ChiRouteDiscoverer {
	return &ChiRouteDiscoverer{
		router:               router,
		handlerNameExtractor: common.NewHandlerNameExtractor(),
	}
}

// DiscoverRoutes walks the chi routing tree, collecting each route's
// method, path, handler, and middleware chain.
func (c *ChiRouteDiscoverer) DiscoverRoutes() ([]model.Route, error) {
	var routes []model.Route

	walkErr := chi.Walk(c.router, func(method, routePath string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		routes = append(routes, model.Route{
			Method:      method,
			Path:        routePath,
			HandlerName: c.extractHandlerName(method, routePath, handler),
			Handler:     handler,
			Middleware:  middlewareNames(middlewares),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk chi routes: %w", walkErr)
	}

	return routes, nil
}

func (c *ChiRouteDiscoverer) extractHandlerName(method, routePath string, handler http.Handler) string {
	if handler != nil {
		handlerValue := reflect.ValueOf(handler)
		if pc := funcPC(handlerValue); pc != 0 {
			if fn := runtime.FuncForPC(pc); fn != nil {
				if cleanName := c.handlerNameExtractor.ParseHandlerNameFromFunction(fn.Name()); cleanName != "" {
					return cleanName
				}
			}
		}
	}

	parser := openapiParser.NewPathParser()
	return parser.GenerateHandlerName(method, routePath)
}

// funcPC extracts the program counter of an http.Handler value,
// whether it's a bare func or an http.HandlerFunc wrapper.
func funcPC(v reflect.Value) uintptr {
	if v.Kind() == reflect.Func {
		return v.Pointer()
	}
	if hf, ok := v.Interface().(http.HandlerFunc); ok {
		return reflect.ValueOf(hf).Pointer()
	}
	return 0
}

// middlewareNames best-effort extracts each middleware's function name
// (stripped to the final identifier, e.g. "RequireAuth") via
// runtime.FuncForPC — middleware is a closure-returning func, so the
// name is the constructing function's, which is what authors actually
// name their middleware after.
func middlewareNames(middlewares []func(http.Handler) http.Handler) []string {
	if len(middlewares) == 0 {
		return nil
	}
	names := make([]string, 0, len(middlewares))
	for _, mw := range middlewares {
		pc := reflect.ValueOf(mw).Pointer()
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if idx := strings.LastIndex(name, "."); idx != -1 {
			name = name[idx+1:]
		}
		name = strings.TrimSuffix(name, "-fm")
		names = append(names, name)
	}
	return names
}

// GetFrameworkName returns the framework name.
func (c *ChiRouteDiscoverer) GetFrameworkName() string {
	return "Chi"
}

// ChiServerAdapter adapts a Chi router to implement the HTTPServer interface.
type ChiServerAdapter struct {
	router chi.Router
}

// NewChiServerAdapter creates a new adapter for a Chi router.
func NewChiServerAdapter(router chi.Router) HTTPServer {
	return &ChiServerAdapter{router: router}
}

// GET implements the HTTPServer interface by adapting to Chi.
func (c *ChiServerAdapter) GET(path string, handler HTTPHandler) {
	c.router.Get(path, func(w http.ResponseWriter, r *http.Request) {
		handler(w, r)
	})
}

// ChiHandlerAnalyzer analyzes Chi handlers (plain net/http signature).
type ChiHandlerAnalyzer struct {
	handlerNameExtractor *common.HandlerNameExtractor
	astAnalyzer          *common.ASTAnalyzer
	schemaAnalyzer       *common.SchemaAnalyzer
	config               interface{}
}

// NewChiHandlerAnalyzer creates a new Chi handler analyzer.
func NewChiHandlerAnalyzer() *ChiHandlerAnalyzer {
	return &ChiHandlerAnalyzer{
		handlerNameExtractor: common.NewHandlerNameExtractor(),
		astAnalyzer:          common.NewASTAnalyzer(),
		schemaAnalyzer:       common.NewSchemaAnalyzer(),
	}
}

// GetFrameworkName returns the framework name.
func (c *ChiHandlerAnalyzer) GetFrameworkName() string {
	return "Chi"
}

// SetConfig sets the configuration for the analyzer.
func (c *ChiHandlerAnalyzer) SetConfig(config interface{}) {
	c.config = config
}

// ExtractTypes extracts request and response types from a Chi handler.
// Chi handlers carry no framework-specific context type to reflect on
// (unlike gin.Context/app.RequestContext), so this always defers to
// AnalyzeHandler's AST-based path.
func (c *ChiHandlerAnalyzer) ExtractTypes(handler interface{}) (requestType, responseType reflect.Type, err error) {
	if handler == nil {
		return nil, nil, fmt.Errorf("handler is nil")
	}
	return nil, nil, nil
}

// AnalyzeHandler analyzes a Chi handler, falling back to a generic
// schema when source analysis is unavailable (e.g. in production).
func (c *ChiHandlerAnalyzer) AnalyzeHandler(handler interface{}) analyzer.HandlerSchema {
	handlerValue := reflect.ValueOf(handler)
	pc := funcPC(handlerValue)
	if pc == 0 {
		return c.schemaAnalyzer.GenerateFallbackSchemas()
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return c.schemaAnalyzer.GenerateFallbackSchemas()
	}

	if sourceFile := c.astAnalyzer.FindHandlerSourceFile(fn.Name()); sourceFile != "" {
		simpleName := fn.Name()
		if idx := strings.LastIndex(simpleName, "."); idx != -1 {
			simpleName = simpleName[idx+1:]
		}
		simpleName = strings.TrimSuffix(simpleName, "-fm")
		if schema := c.astAnalyzer.AnalyzeHandlerWithAST(sourceFile, simpleName, "chi"); schema.RequestSchema.Type != "" || schema.ResponseSchema.Type != "" {
			return schema
		}
	}

	return c.schemaAnalyzer.GenerateFallbackSchemas()
}

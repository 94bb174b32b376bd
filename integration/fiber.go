package integration

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zainokta/spectrum/analyzer"
	"github.com/zainokta/spectrum/integration/common"
	"github.com/zainokta/spectrum/model"
	openapiParser "github.com/zainokta/spectrum/parser"
)

// FiberRouteDiscoverer implements RouteDiscoverer for Fiber.
type FiberRouteDiscoverer struct {
	app                  *fiber.App
	handlerNameExtractor *common.HandlerNameExtractor
}

// NewFiberRouteDiscoverer creates a new Fiber route discoverer.
func NewFiberRouteDiscoverer(app *fiber.App) *FiberRouteDiscoverer {
	return &FiberRouteDiscoverer{
		app:                  app,
		handlerNameExtractor: common.NewHandlerNameExtractor(),
	}
}

// DiscoverRoutes reads Fiber's route stack (grouped by registration
// order per HTTP method) via app.Stack().
func (f *FiberRouteDiscoverer) DiscoverRoutes() ([]model.Route, error) {
	var routes []model.Route

	for _, methodGroup := range f.app.Stack() {
		for _, route := range methodGroup {
			if route.Method == "" || route.Path == "" {
				continue
			}
			// Skip routes with no user handler. The HEAD route Fiber
			// adds beside every GET carries the same handlers and is kept.
			if len(route.Handlers) == 0 {
				continue
			}

			routes = append(routes, model.Route{
				Method:      route.Method,
				Path:        route.Path,
				HandlerName: f.extractHandlerName(route),
				Handler:     route.Handlers[len(route.Handlers)-1],
				Middleware:  fiberMiddlewareNames(route.Handlers),
			})
		}
	}

	return routes, nil
}

func (f *FiberRouteDiscoverer) extractHandlerName(route *fiber.Route) string {
	if route.Name != "" {
		return route.Name
	}

	if len(route.Handlers) > 0 {
		handler := route.Handlers[len(route.Handlers)-1]
		pc := reflect.ValueOf(handler).Pointer()
		if fn := runtime.FuncForPC(pc); fn != nil {
			if cleanName := f.handlerNameExtractor.ParseHandlerNameFromFunction(fn.Name()); cleanName != "" {
				return cleanName
			}
		}
	}

	parser := openapiParser.NewPathParser()
	return parser.GenerateHandlerName(route.Method, route.Path)
}

// fiberMiddlewareNames reports every handler in the chain but the
// last (the final handler is the route's own action; everything
// before it ran as middleware).
func fiberMiddlewareNames(handlers []fiber.Handler) []string {
	if len(handlers) <= 1 {
		return nil
	}
	names := make([]string, 0, len(handlers)-1)
	for _, h := range handlers[:len(handlers)-1] {
		pc := reflect.ValueOf(h).Pointer()
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if idx := strings.LastIndex(name, "."); idx != -1 {
			name = name[idx+1:]
		}
		names = append(names, strings.TrimSuffix(name, "-fm"))
	}
	return names
}

// GetFrameworkName returns the framework name.
func (f *FiberRouteDiscoverer) GetFrameworkName() string {
	return "Fiber"
}

// FiberServerAdapter adapts a Fiber app to implement the HTTPServer interface.
type FiberServerAdapter struct {
	app *fiber.App
}

// NewFiberServerAdapter creates a new adapter for a Fiber app.
func NewFiberServerAdapter(app *fiber.App) HTTPServer {
	return &FiberServerAdapter{app: app}
}

// GET implements the HTTPServer interface by adapting to Fiber.
func (f *FiberServerAdapter) GET(path string, handler HTTPHandler) {
	f.app.Get(path, func(c *fiber.Ctx) error {
		rw := &fiberResponseWriter{ctx: c, headers: make(http.Header)}
		req, err := http.NewRequest(c.Method(), c.OriginalURL(), nil)
		if err != nil {
			return err
		}
		handler(rw, req)
		return nil
	})
}

// fiberResponseWriter adapts a Fiber Ctx to http.ResponseWriter.
type fiberResponseWriter struct {
	ctx     *fiber.Ctx
	headers http.Header
}

func (w *fiberResponseWriter) Header() http.Header {
	return w.headers
}

func (w *fiberResponseWriter) Write(data []byte) (int, error) {
	return w.ctx.Write(data)
}

func (w *fiberResponseWriter) WriteHeader(statusCode int) {
	for key, values := range w.headers {
		for _, value := range values {
			w.ctx.Set(key, value)
		}
	}
	w.ctx.Status(statusCode)
}

// FiberHandlerAnalyzer analyzes Fiber handlers (func(c *fiber.Ctx) error).
type FiberHandlerAnalyzer struct {
	handlerNameExtractor *common.HandlerNameExtractor
	astAnalyzer          *common.ASTAnalyzer
	schemaAnalyzer       *common.SchemaAnalyzer
	config               interface{}
}

// NewFiberHandlerAnalyzer creates a new Fiber handler analyzer.
func NewFiberHandlerAnalyzer() *FiberHandlerAnalyzer {
	return &FiberHandlerAnalyzer{
		handlerNameExtractor: common.NewHandlerNameExtractor(),
		astAnalyzer:          common.NewASTAnalyzer(),
		schemaAnalyzer:       common.NewSchemaAnalyzer(),
	}
}

// GetFrameworkName returns the framework name.
func (f *FiberHandlerAnalyzer) GetFrameworkName() string {
	return "Fiber"
}

// SetConfig sets the configuration for the analyzer.
func (f *FiberHandlerAnalyzer) SetConfig(config interface{}) {
	f.config = config
}

// ExtractTypes is a no-op for Fiber: *fiber.Ctx carries no per-route
// type information to reflect on, so analysis always goes through
// AnalyzeHandler's AST path.
func (f *FiberHandlerAnalyzer) ExtractTypes(handler interface{}) (requestType, responseType reflect.Type, err error) {
	if handler == nil {
		return nil, nil, fmt.Errorf("handler is nil")
	}
	return nil, nil, nil
}

// AnalyzeHandler analyzes a Fiber handler via AST, falling back to a
// generic schema when source analysis is unavailable.
func (f *FiberHandlerAnalyzer) AnalyzeHandler(handler interface{}) analyzer.HandlerSchema {
	handlerValue := reflect.ValueOf(handler)
	if handlerValue.Kind() != reflect.Func {
		return f.schemaAnalyzer.GenerateFallbackSchemas()
	}

	pc := handlerValue.Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return f.schemaAnalyzer.GenerateFallbackSchemas()
	}

	if sourceFile := f.astAnalyzer.FindHandlerSourceFile(fn.Name()); sourceFile != "" {
		simpleName := fn.Name()
		if idx := strings.LastIndex(simpleName, "."); idx != -1 {
			simpleName = simpleName[idx+1:]
		}
		simpleName = strings.TrimSuffix(simpleName, "-fm")
		if schema := f.astAnalyzer.AnalyzeHandlerWithAST(sourceFile, simpleName, "fiber"); schema.RequestSchema.Type != "" || schema.ResponseSchema.Type != "" {
			return schema
		}
	}

	return f.schemaAnalyzer.GenerateFallbackSchemas()
}

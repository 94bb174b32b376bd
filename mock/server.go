// Package mock serves a generated OpenAPI document back as a running
// HTTP API: every documented path/method pair responds with a body
// synthesized from its first 2xx response's example (or, lacking an
// example, a value walked out of its schema). It exists so a frontend
// can be built against documented shapes before the real service is
// ready; the matching engine itself is intentionally thin (see
// DESIGN.md) and favors go-chi's pattern router, which already
// understands OpenAPI's `{param}` path-template syntax.
package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zainokta/spectrum/logger"
	"github.com/zainokta/spectrum/spec"
)

// Server mocks a generated OpenAPI document.
type Server struct {
	doc    *spec.Document
	logger logger.Logger
	router chi.Router
}

// NewServer builds a mock server from a generated document.
func NewServer(doc *spec.Document, log logger.Logger) *Server {
	s := &Server{doc: doc, logger: log, router: chi.NewRouter()}
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler serving the mocked API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the mock server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("mock server listening", "addr", addr, "paths", len(s.doc.Paths))
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) registerRoutes() {
	for path, item := range s.doc.Paths {
		for method, op := range item.Operations() {
			s.router.Method(strings.ToUpper(method), path, s.mockHandler(path, method, op))
		}
	}
}

func (s *Server) mockHandler(path, method string, op *spec.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, media, ok := bestResponse(op)
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		s.logger.Info("mock request", "method", method, "path", path, "status", status)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusNoContent {
			return
		}

		body := responseBody(media)
		if body == nil {
			return
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			s.logger.Warn("failed to encode mock response", "error", err)
		}
	}
}

// bestResponse picks the response to mock: the lowest documented 2xx
// code, falling back to "default", falling back to whatever sorts
// first. Returns the parsed status and the JSON media type to render.
func bestResponse(op *spec.Operation) (int, spec.MediaType, bool) {
	if len(op.Responses) == 0 {
		return 0, spec.MediaType{}, false
	}

	codes := make([]string, 0, len(op.Responses))
	for code := range op.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	pick := codes[0]
	found2xx := false
	for _, code := range codes {
		if strings.HasPrefix(code, "2") {
			pick = code
			found2xx = true
			break
		}
	}
	if _, hasDefault := op.Responses["default"]; !found2xx && hasDefault {
		pick = "default"
	}

	resp := op.Responses[pick]
	status, err := strconv.Atoi(pick)
	if err != nil {
		status = http.StatusOK
	}

	media, ok := resp.Content["application/json"]
	if !ok {
		for _, m := range resp.Content {
			media = m
			ok = true
			break
		}
	}
	return status, media, ok
}

func responseBody(media spec.MediaType) any {
	if media.Example != nil {
		return media.Example
	}
	for _, ex := range media.Examples {
		return ex.Value
	}
	if media.Schema.Type == "" && len(media.Schema.Properties) == 0 {
		return nil
	}
	return exampleFromSchema(media.Schema)
}

// exampleFromSchema walks a schema and fabricates a representative
// value, preferring any Example/Default already attached by the
// generator over a type-driven placeholder.
func exampleFromSchema(s spec.Schema) any {
	if s.Example != nil {
		return s.Example
	}
	if s.Default != nil {
		return s.Default
	}

	switch s.Type {
	case "object":
		obj := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			obj[name] = exampleFromSchema(prop)
		}
		return obj
	case "array":
		if s.Items == nil {
			return []any{}
		}
		return []any{exampleFromSchema(*s.Items)}
	case "string":
		if len(s.Enum) > 0 {
			return s.Enum[0]
		}
		switch s.Format {
		case "date-time":
			return "2026-01-01T00:00:00Z"
		case "date":
			return "2026-01-01"
		case "uuid":
			return "00000000-0000-0000-0000-000000000000"
		case "email":
			return "user@example.com"
		case "byte":
			return "ZXhhbXBsZQ=="
		default:
			return "string"
		}
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return true
	default:
		return nil
	}
}

// Describe summarizes the mocked routes, useful for a startup banner.
func (s *Server) Describe() string {
	var b strings.Builder
	paths := make([]string, 0, len(s.doc.Paths))
	for p := range s.doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		methods := make([]string, 0, 4)
		for method := range s.doc.Paths[p].Operations() {
			methods = append(methods, strings.ToUpper(method))
		}
		sort.Strings(methods)
		fmt.Fprintf(&b, "%-6s %s\n", strings.Join(methods, ","), p)
	}
	return b.String()
}

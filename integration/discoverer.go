package integration

import (
	"fmt"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/gofiber/fiber/v2"

	"github.com/zainokta/spectrum/model"
)

// RouteDiscoverer interface for framework-agnostic route discovery
type RouteDiscoverer interface {
	DiscoverRoutes() ([]model.Route, error)
	GetFrameworkName() string
}

// AutoDiscoverer automatically detects the framework and creates appropriate discoverer
type AutoDiscoverer struct {
	discoverer RouteDiscoverer
}

// NewAutoDiscoverer creates a discoverer based on the provided framework instance
func NewAutoDiscoverer(framework interface{}) (*AutoDiscoverer, error) {
	var discoverer RouteDiscoverer

	switch f := framework.(type) {
	case *server.Hertz:
		discoverer = NewHertzRouteDiscoverer(f)
	case *gin.Engine:
		discoverer = NewGinRouteDiscoverer(f)
	case chi.Router:
		discoverer = NewChiRouteDiscoverer(f)
	case *fiber.App:
		discoverer = NewFiberRouteDiscoverer(f)
	default:
		return nil, fmt.Errorf("unsupported framework type: %T", framework)
	}

	return &AutoDiscoverer{discoverer: discoverer}, nil
}

// DiscoverRoutes discovers routes using the appropriate discoverer
func (a *AutoDiscoverer) DiscoverRoutes() ([]model.Route, error) {
	return a.discoverer.DiscoverRoutes()
}

// GetFrameworkName returns the detected framework name
func (a *AutoDiscoverer) GetFrameworkName() string {
	return a.discoverer.GetFrameworkName()
}

package openapi

import (
	"fmt"
)

// Config represents the configuration for the OpenAPI generator
type Config struct {
	Environment string  `json:"environment,omitempty"`
	ServerPort  int     `json:"server_port,omitempty"`
	ServerURL   string  `json:"server_url,omitempty"` // Optional override for server URL
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Version     string  `json:"version,omitempty"`
	Contact     Contact `json:"contact,omitempty"`

	// OpenAPIVersion selects the dialect ServeSwaggerUI serves at
	// /openapi.json: "3.0" (default) keeps the generator's native output,
	// "3.1" runs it through spec.Converter31 first. GenerateSpec itself
	// always returns the 3.0 document. Overridden by the
	// SPECTRUM_OPENAPI_VERSION environment variable when loaded via
	// config.Load.
	OpenAPIVersion string `json:"openapi_version,omitempty"`

	// DisableASTAnalysis turns off the AST fallback path in the gin/hertz
	// handler analyzers, relying on reflection-only inference. Useful in
	// a container image that ships only compiled binaries, with no
	// application .go source checked out alongside it.
	DisableASTAnalysis bool `json:"disable_ast_analysis,omitempty"`

	// Schema directory configuration
	SchemaDir string `json:"schema_dir,omitempty"` // Path to generated schema files
}

// Contact represents contact information for the API
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// NewConfig creates a new OpenAPI configuration with defaults
func NewConfig() *Config {
	return &Config{
		Environment:    "development",
		ServerPort:     8080,
		Title:          "API Documentation",
		Description:    "Automatically generated API documentation",
		Version:        "1.0.0",
		OpenAPIVersion: "3.0",
		Contact: Contact{
			Name: "API Team",
		},
		// Default schema directory
		SchemaDir: "./schemas",
	}
}

// NewProductionConfig creates a configuration suitable for Docker/production environments
func NewProductionConfig() *Config {
	config := NewConfig()
	config.Environment = "production"
	config.DisableASTAnalysis = true
	return config
}

// NewDevelopmentConfig creates a configuration suitable for development
func NewDevelopmentConfig() *Config {
	config := NewConfig()
	config.Environment = "development"
	return config
}

// GetServerURL returns the server URL for the OpenAPI spec
func (c *Config) GetServerURL() string {
	if c.ServerURL != "" {
		return c.ServerURL
	}
	return fmt.Sprintf("http://localhost:%d", c.ServerPort)
}

// GetServerDescription returns the server description
func (c *Config) GetServerDescription() string {
	return fmt.Sprintf("%s environment", c.Environment)
}

// IsProductionMode reports whether the generator should skip AST
// fallback analysis because source files are unlikely to be present
// (e.g. a production container image).
func (c *Config) IsProductionMode() bool {
	return c.Environment == "production"
}

// IsASTAnalysisEnabled reports whether the AST fallback path should run
// when reflection-only analysis can't determine a handler's types.
func (c *Config) IsASTAnalysisEnabled() bool {
	return !c.DisableASTAnalysis
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ServerPort <= 0 {
		return fmt.Errorf("server port must be positive, got %d", c.ServerPort)
	}
	if c.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if c.Version == "" {
		return fmt.Errorf("version cannot be empty")
	}
	if c.OpenAPIVersion != "3.0" && c.OpenAPIVersion != "3.1" {
		return fmt.Errorf("openapi version must be \"3.0\" or \"3.1\", got %q", c.OpenAPIVersion)
	}
	return nil
}

// SetSchemaDir sets the schema directory path
func (c *Config) SetSchemaDir(path string) *Config {
	c.SchemaDir = path
	return c
}

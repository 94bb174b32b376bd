// Package config loads the ambient settings the spectrum CLI and
// library entry points need beyond what callers pass via
// openapi.Option: where the documentation cache lives, how many
// workers the parallel engine uses, which OpenAPI dialect to emit,
// and the file-watch debounce. It follows the same viper-plus-env
// pattern as falcon's CLI config loader, just scoped to a single
// SPECTRUM_ prefix instead of a project folder full of YAML.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	spectrum "github.com/zainokta/spectrum"
)

// AppConfig is the fully-resolved configuration for a spectrum CLI
// invocation: the generated document's metadata (Doc) plus the ambient
// settings that control how generation runs.
type AppConfig struct {
	Doc *spectrum.Config

	// CacheDir is where cache.Store persists analysis results. Empty
	// disables on-disk persistence (memory-only for the run).
	CacheDir string

	// Workers caps the parallel route processor's concurrency. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int

	// WatchDebounceMS is how long watch/ waits after the last detected
	// file change before regenerating, coalescing a burst of saves from
	// an editor or `gofmt -w` into a single run.
	WatchDebounceMS int

	// OutputPath is where `spectrum generate` writes the spec file. A
	// dash means stdout.
	OutputPath string
}

const envPrefix = "SPECTRUM"

// Load resolves AppConfig from (in ascending priority) built-in
// defaults, an optional config file at configPath, and SPECTRUM_*
// environment variables. configPath may be empty, in which case only
// defaults and the environment apply.
func Load(configPath string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("server_port", 8080)
	v.SetDefault("title", "API Documentation")
	v.SetDefault("description", "Automatically generated API documentation")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("openapi_version", "3.0")
	v.SetDefault("schema_dir", "./schemas")
	v.SetDefault("cache_dir", "")
	v.SetDefault("workers", 0)
	v.SetDefault("watch_debounce_ms", 300)
	v.SetDefault("output_path", "openapi.json")
	v.SetDefault("disable_ast_analysis", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	doc := &spectrum.Config{
		Environment:        v.GetString("environment"),
		ServerPort:         v.GetInt("server_port"),
		ServerURL:          v.GetString("server_url"),
		Title:              v.GetString("title"),
		Description:        v.GetString("description"),
		Version:            v.GetString("version"),
		OpenAPIVersion:     v.GetString("openapi_version"),
		DisableASTAnalysis: v.GetBool("disable_ast_analysis"),
		SchemaDir:          v.GetString("schema_dir"),
		Contact: spectrum.Contact{
			Name:  v.GetString("contact_name"),
			Email: v.GetString("contact_email"),
			URL:   v.GetString("contact_url"),
		},
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &AppConfig{
		Doc:             doc,
		CacheDir:        v.GetString("cache_dir"),
		Workers:         v.GetInt("workers"),
		WatchDebounceMS: v.GetInt("watch_debounce_ms"),
		OutputPath:      v.GetString("output_path"),
	}, nil
}

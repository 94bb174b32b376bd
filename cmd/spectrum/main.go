// Command spectrum is the CLI companion to the spectrum library. A
// spectrum.EnableDocs-instrumented server already serves its generated
// spec at /openapi.json; this binary fetches that spec to convert it,
// mock it, or re-export it in another format, inspects or clears the
// documentation cache directory, and separately runs the build-time
// schema extractor (schema extract) for annotated handlers.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zainokta/spectrum/cache"
	"github.com/zainokta/spectrum/config"
	"github.com/zainokta/spectrum/export"
	"github.com/zainokta/spectrum/logger"
	"github.com/zainokta/spectrum/mock"
	"github.com/zainokta/spectrum/spec"
	"github.com/zainokta/spectrum/watch"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "spectrum",
		Short: "Zero-annotation OpenAPI tooling for Go HTTP services",
		Long: `spectrum generates and serves OpenAPI documentation for Go services
without hand-written annotations. A process built with spectrum.EnableDocs
already serves its spec at /openapi.json; this CLI fetches, converts,
watches, mocks, and exports that spec, and inspects or clears the
documentation cache directory.`,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: SPECTRUM_* environment variables only)")

	root.AddCommand(
		newGenerateCmd(&cfgFile),
		newCacheCmd(),
		newWatchCmd(&cfgFile),
		newExportCmd(),
		newSchemaCmd(),
		newMockCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("spectrum %s\n  commit: %s\n  built:  %s\n", version, commit, date)
		},
	}
}

func newGenerateCmd(cfgFile *string) *cobra.Command {
	var sourceURL string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch a running service's generated spec and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if sourceURL == "" {
				sourceURL = fmt.Sprintf("%s/openapi.json", appCfg.Doc.GetServerURL())
			}

			doc, err := fetchDocument(sourceURL)
			if err != nil {
				return err
			}

			var payload any = doc
			if appCfg.Doc.OpenAPIVersion == "3.1" {
				converted, err := spec.NewConverter31().Convert(*doc)
				if err != nil {
					return fmt.Errorf("failed to convert to OpenAPI 3.1: %w", err)
				}
				payload = converted
			} else if err := spec.ValidateDraft7(*doc); err != nil {
				return fmt.Errorf("generated spec failed draft-7 validation: %w", err)
			}

			return writeJSON(appCfg.OutputPath, payload)
		},
	}

	cmd.Flags().StringVar(&sourceURL, "url", "", "URL of the running service's /openapi.json (default derived from config server URL)")
	return cmd
}

func newCacheCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the documentation cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "./.spectrum-cache", "documentation cache directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print the number of entries persisted in the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := os.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("cache entries: 0 (directory does not exist yet)")
					return nil
				}
				return err
			}
			count := 0
			for _, e := range entries {
				if !e.IsDir() {
					count++
				}
			}
			fmt.Printf("cache entries: %d (%s)\n", count, dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := cache.NewStore(dir, &logger.NoOpLogger{})
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Printf("cleared cache at %s\n", dir)
			return nil
		},
	})

	return cmd
}

func newWatchCmd(cfgFile *string) *cobra.Command {
	var sourceURL, host string
	var port int

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Regenerate the spec file whenever source under the given paths changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			appCfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if sourceURL == "" {
				sourceURL = fmt.Sprintf("%s/openapi.json", appCfg.Doc.GetServerURL())
			}

			log := &logger.NoOpLogger{}

			var srv *watch.Server
			if port != 0 {
				srv = watch.NewServer(log)
				addr := fmt.Sprintf("%s:%d", host, port)
				go func() {
					if err := srv.ListenAndServe(addr); err != nil {
						fmt.Fprintf(os.Stderr, "watch server stopped: %v\n", err)
					}
				}()
				fmt.Printf("live preview on http://%s/openapi.json (ws at /ws)\n", addr)
			}

			regenerate := func() error {
				doc, err := fetchDocument(sourceURL)
				if err != nil {
					return err
				}
				if err := writeJSON(appCfg.OutputPath, doc); err != nil {
					return err
				}
				if srv != nil {
					data, err := json.MarshalIndent(doc, "", "  ")
					if err != nil {
						return err
					}
					srv.SetSpec(data)
					abs, err := filepath.Abs(appCfg.OutputPath)
					if err != nil {
						abs = appCfg.OutputPath
					}
					srv.Broadcast(abs)
				}
				return nil
			}

			w, err := watch.New(args, time.Duration(appCfg.WatchDebounceMS)*time.Millisecond, log)
			if err != nil {
				return err
			}
			defer w.Close()

			if srv != nil {
				if err := regenerate(); err != nil {
					return err
				}
			}

			fmt.Printf("watching %v, writing %s on change (Ctrl-C to stop)\n", args, appCfg.OutputPath)
			return w.Run(regenerate)
		},
	}

	cmd.Flags().StringVar(&sourceURL, "url", "", "URL of the running service's /openapi.json")
	cmd.Flags().StringVar(&host, "host", "localhost", "host to bind the live-preview server to")
	cmd.Flags().IntVar(&port, "port", 0, "port for the live-preview server (0 disables it)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var sourceURL, outputPath string

	postman := &cobra.Command{
		Use:   "export:postman",
		Short: "Export a running service's spec as a Postman collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fetchDocument(sourceURL)
			if err != nil {
				return err
			}
			collection, err := export.ToPostman(*doc)
			if err != nil {
				return err
			}
			data, err := export.WritePostman(collection)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			fmt.Printf("wrote %s\n", outputPath)
			return nil
		},
	}
	postman.Flags().StringVar(&sourceURL, "url", "http://localhost:8080/openapi.json", "URL of the running service's /openapi.json")
	postman.Flags().StringVar(&outputPath, "out", "postman_collection.json", "output file path")

	insomnia := &cobra.Command{
		Use:   "export:insomnia",
		Short: "Export a running service's spec as an Insomnia export",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fetchDocument(sourceURL)
			if err != nil {
				return err
			}
			exportDoc := export.ToInsomnia(*doc)
			return writeJSON(outputPath, exportDoc)
		},
	}
	insomnia.Flags().StringVar(&sourceURL, "url", "http://localhost:8080/openapi.json", "URL of the running service's /openapi.json")
	insomnia.Flags().StringVar(&outputPath, "out", "insomnia_export.json", "output file path")

	wrapper := &cobra.Command{Use: "export", Short: "Export a generated spec to another tool's format"}
	wrapper.AddCommand(postman, insomnia)
	return wrapper
}

func newMockCmd() *cobra.Command {
	var sourceURL, specPath, host string
	var port int

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a generated spec's documented responses as a running API",
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *spec.Document
			switch {
			case specPath != "":
				data, err := os.ReadFile(specPath)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", specPath, err)
				}
				doc = &spec.Document{}
				if err := json.Unmarshal(data, doc); err != nil {
					return fmt.Errorf("failed to decode %s: %w", specPath, err)
				}
			case sourceURL != "":
				fetched, err := fetchDocument(sourceURL)
				if err != nil {
					return err
				}
				doc = fetched
			default:
				return fmt.Errorf("either --spec or --url must be set")
			}

			srv := mock.NewServer(doc, &logger.NoOpLogger{})
			fmt.Print(srv.Describe())

			addr := fmt.Sprintf("%s:%d", host, port)
			fmt.Printf("mocking %d path(s) on http://%s (Ctrl-C to stop)\n", len(doc.Paths), addr)
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to a generated openapi.json file to mock")
	cmd.Flags().StringVar(&sourceURL, "url", "", "URL of a running service's /openapi.json to mock instead of a local file")
	cmd.Flags().StringVar(&host, "host", "localhost", "host to bind the mock server to")
	cmd.Flags().IntVar(&port, "port", 8090, "port for the mock server")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var outputDir, requestType, responseType, handlerName string
	var verbose bool

	extract := &cobra.Command{
		Use:   "extract <files...>",
		Short: "Pre-generate JSON schema files for annotated or named handlers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemaExtract(args, outputDir, requestType, responseType, handlerName, verbose)
		},
	}
	extract.Flags().StringVar(&outputDir, "output", "./schemas", "output directory for schema files")
	extract.Flags().StringVar(&requestType, "request", "", "request type in format package.TypeName")
	extract.Flags().StringVar(&responseType, "response", "", "response type in format package.TypeName")
	extract.Flags().StringVar(&handlerName, "handler", "", "handler name (auto-detected if not provided)")
	extract.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	wrapper := &cobra.Command{Use: "schema", Short: "Build-time schema extraction from annotated handlers"}
	wrapper.AddCommand(extract)
	return wrapper
}

func fetchDocument(url string) (*spec.Document, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var doc spec.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode OpenAPI document: %w", err)
	}
	return &doc, nil
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

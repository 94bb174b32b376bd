package errs

import "sync"

// Collector accumulates non-fatal errors from analyzer runs. Every
// method is safe to call from multiple goroutines. Generator.GenerateSpec
// keeps one Collector per generation run and adds each route's error
// to it after parallel.Process has returned.
type Collector struct {
	mu     sync.Mutex
	errors []error
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records an error. A nil error is ignored, so callers can write
// `collector.Add(analyzeRoute(r))` unconditionally.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns a snapshot of every collected error, in the order they
// were added.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errors))
	copy(out, c.errors)
	return out
}

// HasErrors reports whether anything has been collected.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}

// CountByStage groups collected errors by the pipeline stage they came
// from, for summary reporting (Generator.GenerateSpec logs this as a
// warning at the end of a run when errors were collected).
func (c *Collector) CountByStage() map[Stage]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := make(map[Stage]int)
	for _, err := range c.errors {
		counts[stageOf(err)]++
	}
	return counts
}

func stageOf(err error) Stage {
	switch e := err.(type) {
	case *RouteLoadingError:
		return e.stage
	case *AnalysisError:
		return e.stage
	case *SchemaGenerationError:
		return e.stage
	case *OpenApiAssemblyError:
		return e.stage
	case *CacheError:
		return e.stage
	case *ConversionError:
		return e.stage
	case *IOError:
		return e.stage
	default:
		return "unknown"
	}
}

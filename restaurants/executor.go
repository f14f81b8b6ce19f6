package restaurants

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/forestxieCode/a2ui"
)

// DefaultBaseURL is used when no base URL is configured. Image URLs in
// generated records point at {base URL}/static/{filename}.
const DefaultBaseURL = "http://localhost:8080"

// DefaultCount is the number of records returned when the model omits count.
const DefaultCount = 5

// Compile-time interface check.
var _ a2ui.ToolExecutor = (*Executor)(nil)

// Config configures an Executor. Zero values get sensible defaults.
type Config struct {
	BaseURL string            // base URL for image links; DefaultBaseURL if empty
	DataDir string            // directory holding static dataset files
	Aliases map[string]string // location alias table; DefaultAliases() if nil
	Logger  *slog.Logger      // slog.Default() if nil
	Rand    *rand.Rand        // injectable random source; time-seeded if nil
}

// Executor dispatches tool calls to the restaurant lookup implementation.
type Executor struct {
	dataset *Dataset
	gen     *Generator
	logger  *slog.Logger
}

// NewExecutor creates an Executor from cfg.
func NewExecutor(cfg Config) *Executor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Aliases == nil {
		cfg.Aliases = DefaultAliases()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	e := &Executor{
		dataset: NewDataset(cfg.DataDir, cfg.Aliases),
		gen:     NewGenerator(cfg.BaseURL, cfg.Rand),
		logger:  cfg.Logger,
	}
	e.checkAliasTargets()
	return e
}

// checkAliasTargets logs which alias targets are missing a dataset file, so
// a misconfigured data directory shows up at startup rather than as silent
// fallbacks on every lookup.
func (e *Executor) checkAliasTargets() {
	keys, err := e.dataset.Keys()
	if err != nil {
		e.logger.Warn("listing dataset files failed, all lookups will use fallback data", "error", err)
		return
	}
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	for alias, key := range e.dataset.aliases {
		if !present[key] {
			e.logger.Warn("alias points at a missing dataset file, lookups will use fallback data",
				"alias", alias, "key", key)
		}
	}
}

// Tools returns the tool definitions this executor serves.
func (e *Executor) Tools() []a2ui.Tool {
	return []a2ui.Tool{Tool()}
}

// Execute dispatches a tool call by name. Unknown tool names return an
// IsError result so the model can self-correct.
func (e *Executor) Execute(_ context.Context, name string, args json.RawMessage) (*a2ui.ToolResult, error) {
	if name != ToolName {
		return &a2ui.ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}

	var a Args
	if err := json.Unmarshal(args, &a); err != nil {
		return &a2ui.ToolResult{Content: fmt.Sprintf("invalid arguments: %s", err), IsError: true}, nil
	}
	count := DefaultCount
	if a.Count != nil {
		count = *a.Count
	}
	if count < 0 {
		return &a2ui.ToolResult{Content: "count must be non-negative", IsError: true}, nil
	}

	records := e.Lookup(a2ui.Query{Cuisine: a.Cuisine, Location: a.Location, Count: count})

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("restaurants: encoding records: %w", err)
	}
	return &a2ui.ToolResult{Content: string(data)}, nil
}

// Lookup returns up to q.Count records from the static dataset when the
// location resolves to a known key, and exactly q.Count synthetic records
// otherwise. Dataset failures are logged and never propagate: the fallback
// guarantees a non-empty result for any q.Count > 0. The only legitimate
// empty result is q.Count == 0.
func (e *Executor) Lookup(q a2ui.Query) []a2ui.Restaurant {
	if q.Count <= 0 {
		return []a2ui.Restaurant{}
	}

	if key, ok := e.dataset.Resolve(q.Location); ok {
		entries, err := e.dataset.Load(key)
		switch {
		case err != nil:
			e.logger.Warn("static dataset unavailable, generating fallback data",
				"key", key, "location", q.Location, "error", err)
		case len(entries) == 0:
			e.logger.Info("static dataset has no rows, generating fallback data",
				"key", key, "location", q.Location)
		default:
			if len(entries) > q.Count {
				entries = entries[:q.Count]
			}
			return entries
		}
	}

	return e.gen.Generate(q.Cuisine, q.Location, q.Count)
}

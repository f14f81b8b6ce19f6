package restaurants

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/forestxieCode/a2ui"
)

// ErrDatasetUnavailable indicates the dataset file for a resolved key could
// not be read or parsed. Distinct from "no rows matched" so logs can tell
// the two apart; both collapse to the synthetic fallback.
var ErrDatasetUnavailable = errors.New("static dataset unavailable")

// DefaultAliases maps normalized location strings to dataset keys.
// The table is data, not code: callers can extend or replace it.
func DefaultAliases() map[string]string {
	return map[string]string{
		"new york":      "new_york",
		"new york city": "new_york",
		"ny":            "new_york",
		"nyc":           "new_york",
	}
}

// Dataset serves restaurant entries from per-key JSON files in a directory.
// Files are read wholesale on each call; the data is small and fixed.
type Dataset struct {
	dir     string
	aliases map[string]string
}

// NewDataset creates a Dataset over dir with the given alias table.
// A nil alias table means no location ever resolves to a static key.
func NewDataset(dir string, aliases map[string]string) *Dataset {
	return &Dataset{dir: dir, aliases: aliases}
}

// Resolve normalizes a location (case-insensitive, whitespace-collapsed)
// and looks it up in the alias table.
func (d *Dataset) Resolve(location string) (string, bool) {
	normalized := strings.Join(strings.Fields(strings.ToLower(location)), " ")
	key, ok := d.aliases[normalized]
	return key, ok
}

// Load reads all entries for a dataset key. Read and parse failures are
// wrapped in ErrDatasetUnavailable so callers can trigger the fallback
// while keeping the cause in logs.
func (d *Dataset) Load(key string) ([]a2ui.Restaurant, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, key+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDatasetUnavailable, key, err)
	}
	var entries []a2ui.Restaurant
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDatasetUnavailable, key, err)
	}
	return entries, nil
}

// Keys lists the dataset keys present in the directory.
func (d *Dataset) Keys() ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(d.dir), "*.json", doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	return keys, nil
}

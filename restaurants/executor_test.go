package restaurants_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/restaurants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T) *restaurants.Executor {
	t.Helper()
	return restaurants.NewExecutor(restaurants.Config{
		BaseURL: "http://localhost:8080",
		DataDir: "testdata",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rand:    rand.New(rand.NewSource(7)),
	})
}

func execute(t *testing.T, e *restaurants.Executor, args string) []a2ui.Restaurant {
	t.Helper()
	result, err := e.Execute(context.Background(), restaurants.ToolName, json.RawMessage(args))
	require.NoError(t, err)
	require.False(t, result.IsError, "unexpected domain error: %s", result.Content)

	var records []a2ui.Restaurant
	require.NoError(t, json.Unmarshal([]byte(result.Content), &records))
	return records
}

func TestExecutor_Execute(t *testing.T) {
	t.Parallel()

	t.Run("static alias hit returns file entries unchanged", func(t *testing.T) {
		t.Parallel()
		records := execute(t, newExecutor(t), `{"cuisine":"Chinese","location":"New York","count":5}`)
		require.Len(t, records, 5)
		assert.Equal(t, "Golden Dragon", records[0].Name)
		assert.Equal(t, "Lucky Noodle House", records[1].Name)
		for _, r := range records {
			assert.NotContains(t, r.Name, "Delight #", "static entries must not be synthetic")
		}
	})

	t.Run("unknown location returns exactly count synthetic records", func(t *testing.T) {
		t.Parallel()
		records := execute(t, newExecutor(t), `{"cuisine":"Italian","location":"Rome","count":3}`)
		require.Len(t, records, 3)
		for _, r := range records {
			assert.True(t, strings.HasPrefix(r.Name, "Italian Delight #"), "name %q", r.Name)
			assert.True(t, strings.HasPrefix(r.ImageURL, "http://localhost:8080/static/"), "imageUrl %q", r.ImageURL)
		}
	})

	t.Run("omitted count defaults to five", func(t *testing.T) {
		t.Parallel()
		records := execute(t, newExecutor(t), `{"cuisine":"Italian","location":"Rome"}`)
		assert.Len(t, records, 5)
	})

	t.Run("explicit zero count is the one legitimate empty result", func(t *testing.T) {
		t.Parallel()
		e := newExecutor(t)
		for _, args := range []string{
			`{"cuisine":"Italian","location":"Rome","count":0}`,
			`{"cuisine":"Chinese","location":"New York","count":0}`,
		} {
			result, err := e.Execute(context.Background(), restaurants.ToolName, json.RawMessage(args))
			require.NoError(t, err)
			require.False(t, result.IsError)
			assert.JSONEq(t, `[]`, result.Content, "args %s", args)
		}
	})

	t.Run("negative count is a domain error", func(t *testing.T) {
		t.Parallel()
		result, err := newExecutor(t).Execute(context.Background(), restaurants.ToolName,
			json.RawMessage(`{"cuisine":"Italian","location":"Rome","count":-1}`))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("unreadable dataset falls back to synthetic records", func(t *testing.T) {
		t.Parallel()
		e := restaurants.NewExecutor(restaurants.Config{
			DataDir: "testdata",
			Aliases: map[string]string{"broken town": "broken"},
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Rand:    rand.New(rand.NewSource(7)),
		})
		records := execute(t, e, `{"cuisine":"Chinese","location":"Broken Town","count":4}`)
		require.Len(t, records, 4)
		assert.True(t, strings.HasPrefix(records[0].Name, "Chinese Delight #"))
	})

	t.Run("empty dataset falls back to synthetic records", func(t *testing.T) {
		t.Parallel()
		e := restaurants.NewExecutor(restaurants.Config{
			DataDir: "testdata",
			Aliases: map[string]string{"ghost town": "empty"},
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Rand:    rand.New(rand.NewSource(7)),
		})
		records := execute(t, e, `{"cuisine":"Thai","location":"Ghost Town","count":2}`)
		require.Len(t, records, 2)
	})

	t.Run("count larger than dataset returns the whole file", func(t *testing.T) {
		t.Parallel()
		records := execute(t, newExecutor(t), `{"cuisine":"Chinese","location":"nyc","count":50}`)
		assert.Len(t, records, 6)
	})

	t.Run("unknown tool name is a domain error", func(t *testing.T) {
		t.Parallel()
		result, err := newExecutor(t).Execute(context.Background(), "get_weather", json.RawMessage(`{}`))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "unknown tool")
	})

	t.Run("malformed arguments are a domain error", func(t *testing.T) {
		t.Parallel()
		result, err := newExecutor(t).Execute(context.Background(), restaurants.ToolName, json.RawMessage(`{"count":"many"}`))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "invalid arguments")
	})
}

func TestNewExecutor_WarnsAboutMissingDatasetFiles(t *testing.T) {
	t.Parallel()

	var logs strings.Builder
	restaurants.NewExecutor(restaurants.Config{
		DataDir: "testdata",
		Aliases: map[string]string{
			"new york": "new_york",
			"atlantis": "atlantis",
		},
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})

	assert.Contains(t, logs.String(), "missing dataset file")
	assert.Contains(t, logs.String(), "key=atlantis")
	assert.NotContains(t, logs.String(), "key=new_york")
}

func TestNewExecutor_WarnsWhenDataDirUnreadable(t *testing.T) {
	t.Parallel()

	var logs strings.Builder
	restaurants.NewExecutor(restaurants.Config{
		DataDir: "testdata/does-not-exist",
		Logger:  slog.New(slog.NewTextHandler(&logs, nil)),
	})

	assert.Contains(t, logs.String(), "listing dataset files failed")
}

func TestTool(t *testing.T) {
	t.Parallel()

	tool := restaurants.Tool()
	assert.Equal(t, "get_restaurants", tool.Name)
	assert.NotEmpty(t, tool.Description)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(tool.Parameters, &schema))
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"cuisine", "location", "count"} {
		assert.Contains(t, props, field)
	}
}

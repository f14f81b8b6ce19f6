// Command a2ui is a restaurant-finding chat client with a generated UI.
//
// The assistant answers with conversational prose, then a delimiter, then a
// JSON document describing restaurant cards the client renders in the
// terminal. Restaurant data comes from the get_restaurants tool backed by a
// static dataset with a synthetic fallback.
//
// Usage:
//
//	GEMINI_API_KEY=gk-...  a2ui [flags]
//	OPENAI_API_KEY=sk-...  a2ui [flags]
//
// Flags:
//
//	-provider string      Provider: gemini, openai (auto-detected from env vars if omitted)
//	-model string         Model ID (default: provider default)
//	-session string       Path to session file to resume
//	-data-dir string      Directory of restaurant dataset files (default: data)
//	-asset-base string    Base URL for generated restaurant images
//	-api-key string       API key (overrides provider's env var)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/forestxieCode/a2ui"
	a2uijson "github.com/forestxieCode/a2ui/json"
	"github.com/forestxieCode/a2ui/restaurants"
	"github.com/forestxieCode/a2ui/tui"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// systemPrompt instructs the model to follow the UI payload contract.
const systemPrompt = `You are a restaurant-finding assistant. When the user asks about
restaurants, call the get_restaurants tool to fetch data, then answer.

Your final answer MUST have exactly this structure:
1. A short conversational message for the user.
2. The literal delimiter line: ` + a2ui.PayloadDelimiter + `
3. A JSON object of the form {"restaurants": [...]} containing the tool
   results you want to show, with their original fields unchanged.

Never omit the delimiter and never wrap the JSON in a code fence.`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "a2ui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; environment variables win when both are set.
	_ = godotenv.Load()

	var (
		model        = flag.String("model", "", "Model ID (provider-specific)")
		sessionPath  = flag.String("session", "", "Path to session file to resume")
		dataDir      = flag.String("data-dir", "data", "Directory of restaurant dataset files")
		assetBase    = flag.String("asset-base", restaurants.DefaultBaseURL, "Base URL for generated restaurant images")
		providerFlag = flag.String("provider", "", "Provider: gemini, openai (auto-detected from env vars if omitted)")
		apiKey       = flag.String("api-key", "", "API key (overrides provider's env var)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env vars are read here and passed as values.
	provider, err := resolveProvider(ctx, *providerFlag, *apiKey,
		os.Getenv("GEMINI_API_KEY"), os.Getenv("OPENAI_API_KEY"))
	if err != nil {
		return err
	}

	session, err := loadOrCreateSession(*sessionPath)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger()
	defer closeLog()

	executor := restaurants.NewExecutor(restaurants.Config{
		BaseURL: *assetBase,
		DataDir: *dataDir,
		Logger:  logger,
	})

	loop := a2ui.NewLoop(provider, executor)
	toolDefs := executor.Tools()

	modelID := *model
	agentFn := func(ctx context.Context, s *a2ui.Session, onEvent func(a2ui.Event)) error {
		opts := []a2ui.RunOption{a2ui.WithEventHandler(onEvent)}
		if modelID != "" {
			opts = append(opts, a2ui.WithModel(modelID))
		}
		return loop.Run(ctx, s, toolDefs, opts...)
	}

	tuiModel := tui.New(agentFn, &session, a2ui.DefaultTheme())
	if err := tui.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Save session on exit.
	if *sessionPath != "" {
		if err := a2uijson.Save(*sessionPath, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	} else if len(session.Messages) > 0 {
		savePath := defaultSessionPath(session.ID)
		if err := a2uijson.Save(savePath, session); err != nil {
			return fmt.Errorf("auto-save session: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Session saved to %s\n", savePath)
	}

	return nil
}

func loadOrCreateSession(sessionPath string) (a2ui.Session, error) {
	if sessionPath != "" {
		s, err := a2uijson.Load(sessionPath)
		if err != nil {
			return a2ui.Session{}, fmt.Errorf("load session: %w", err)
		}
		return s, nil
	}

	now := time.Now()
	return a2ui.Session{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func defaultSessionPath(id string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".a2ui", "sessions", id+".json")
}

// newLogger writes structured logs to ~/.a2ui/a2ui.log so they never fight
// the TUI for the terminal. Falls back to a discard logger.
func newLogger() (*slog.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	dir := filepath.Join(home, ".a2ui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "a2ui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }
}

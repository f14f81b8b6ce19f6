package main

import (
	"context"
	"fmt"

	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/gemini"
	"github.com/forestxieCode/a2ui/openai"
)

// resolveProvider selects and constructs the provider. All env var values are
// passed in as parameters - env is only read in main().
func resolveProvider(ctx context.Context, providerFlag, apiKeyFlag, geminiEnvKey, openaiEnvKey string) (a2ui.Provider, error) {
	provider := providerFlag

	// Auto-detect from env vars if no flag.
	if provider == "" {
		hasGemini := geminiEnvKey != ""
		hasOpenAI := openaiEnvKey != ""
		switch {
		case hasGemini && hasOpenAI:
			return nil, fmt.Errorf("multiple API keys found (GEMINI_API_KEY, OPENAI_API_KEY): use -provider flag to select")
		case hasGemini:
			provider = "gemini"
		case hasOpenAI:
			provider = "openai"
		default:
			return nil, fmt.Errorf("no API key found: set GEMINI_API_KEY or OPENAI_API_KEY (or use -provider and -api-key flags)")
		}
	}

	// Resolve API key: explicit flag overrides env var.
	key := apiKeyFlag
	switch provider {
	case "gemini":
		if key == "" {
			key = geminiEnvKey
		}
		if key == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set (use -api-key flag or environment variable)")
		}
		client, err := gemini.New(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return client, nil
	case "openai":
		if key == "" {
			key = openaiEnvKey
		}
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set (use -api-key flag or environment variable)")
		}
		return openai.New(key), nil
	default:
		return nil, fmt.Errorf("unknown provider %q: must be \"gemini\" or \"openai\"", provider)
	}
}

package mock

import (
	"context"
	"encoding/json"

	"github.com/forestxieCode/a2ui"
)

// Interface compliance check.
var _ a2ui.ToolExecutor = (*ToolExecutor)(nil)

// ToolExecutor is a test double for a2ui.ToolExecutor.
// Set ExecuteFn before calling Execute.
type ToolExecutor struct {
	ExecuteFn func(ctx context.Context, name string, args json.RawMessage) (*a2ui.ToolResult, error)
}

// Execute delegates to ExecuteFn.
func (e *ToolExecutor) Execute(ctx context.Context, name string, args json.RawMessage) (*a2ui.ToolResult, error) {
	return e.ExecuteFn(ctx, name, args)
}

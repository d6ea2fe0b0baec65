package hookrt

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/ya-luotao/claude-agent-sdk-go/internal/errors"
)

func hookInput(event, toolName string) map[string]any {
	return map[string]any{
		"hook_event_name": event,
		"session_id":      "sess-1",
		"tool_name":       toolName,
	}
}

func TestDispatchInvokesCallback(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	var gotTool string

	registry.Register("hook_0", Registration{
		Callback: func(_ context.Context, input Input, _ *string, _ *Context) (Output, error) {
			pre, ok := input.(*PreToolUseInput)
			require.True(t, ok)

			gotTool = pre.ToolName

			return nil, nil
		},
	})

	wire, err := registry.Dispatch(context.Background(), "hook_0", hookInput("PreToolUse", "Bash"), nil)
	require.NoError(t, err)

	assert.Equal(t, "Bash", gotTool)
	assert.Equal(t, map[string]any{"continue": true}, wire)
}

func TestDispatchUnknownCallbackID(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	_, err := registry.Dispatch(context.Background(), "hook_99", hookInput("Stop", ""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown hook callback id")
}

func TestDispatchTimeout(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	timeout := 50 * time.Millisecond

	registry.Register("hook_slow", Registration{
		Timeout: &timeout,
		Callback: func(ctx context.Context, _ Input, _ *string, _ *Context) (Output, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(10 * time.Second):
				return nil, nil
			}
		},
	})

	_, err := registry.Dispatch(context.Background(), "hook_slow", hookInput("Stop", ""), nil)
	require.Error(t, err)

	var timeoutErr *sdkerrors.HookTimeoutError
	require.True(t, stderrors.As(err, &timeoutErr))
	assert.Equal(t, "hook_slow", timeoutErr.CallbackID)
	assert.True(t, stderrors.Is(err, sdkerrors.ErrHookTimeout))
}

func TestDispatchContextCancellation(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	timeout := 10 * time.Second

	started := make(chan struct{})

	registry.Register("hook_cancel", Registration{
		Timeout: &timeout,
		Callback: func(_ context.Context, _ Input, _ *string, hookCtx *Context) (Output, error) {
			close(started)

			<-hookCtx.Signal()

			return nil, stderrors.New("saw cancellation")
		},
	})

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-started
		cancel()
	}()

	_, err := registry.Dispatch(ctx, "hook_cancel", hookInput("Stop", ""), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDispatchCallbackError(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	registry.Register("hook_err", Registration{
		Callback: func(_ context.Context, _ Input, _ *string, _ *Context) (Output, error) {
			return nil, stderrors.New("handler blew up")
		},
	})

	_, err := registry.Dispatch(context.Background(), "hook_err", hookInput("Stop", ""), nil)
	require.ErrorContains(t, err, "handler blew up")
}

func TestDispatchReceivesToolUseID(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	var got *string

	registry.Register("hook_id", Registration{
		Callback: func(_ context.Context, _ Input, toolUseID *string, _ *Context) (Output, error) {
			got = toolUseID

			return nil, nil
		},
	})

	id := "toolu_42"

	_, err := registry.Dispatch(context.Background(), "hook_id", hookInput("PreToolUse", "Bash"), &id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "toolu_42", *got)
}

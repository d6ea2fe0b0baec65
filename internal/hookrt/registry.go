package hookrt

import (
	"context"
	"fmt"
	"time"

	sdkerrors "github.com/ya-luotao/claude-agent-sdk-go/internal/errors"
)

// Registration binds a generated callback id to a callback and its optional
// per-registration timeout.
type Registration struct {
	Callback Callback
	Timeout  *time.Duration
}

// Registry holds hook registrations keyed by their generated callback id.
//
// The registry is populated once while building the initialize handshake and
// is read-only for the rest of the session, so lookups need no locking.
type Registry struct {
	regs map[string]Registration
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{regs: make(map[string]Registration, 16)}
}

// Register adds a registration under the given callback id.
// Must only be called before the session starts serving requests.
func (r *Registry) Register(id string, reg Registration) {
	r.regs[id] = reg
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	return len(r.regs)
}

// Dispatch services one inbound hook_callback request: it looks up the
// registration, parses the raw input into its typed shape, invokes the
// callback (racing it against the registration timeout when one is set), and
// encodes the callback's output to the wire map.
//
// An unknown callback id is a protocol error. A timeout produces a
// HookTimeoutError. Both become error control-responses in the caller.
func (r *Registry) Dispatch(
	ctx context.Context,
	callbackID string,
	rawInput map[string]any,
	toolUseID *string,
) (map[string]any, error) {
	reg, ok := r.regs[callbackID]
	if !ok {
		return nil, fmt.Errorf("unknown hook callback id: %s", callbackID)
	}

	input, err := ParseInput(rawInput)
	if err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}

	output, err := r.invoke(ctx, callbackID, reg, input, toolUseID)
	if err != nil {
		return nil, err
	}

	return EncodeOutput(output), nil
}

// callbackResult carries the outcome of a callback goroutine.
type callbackResult struct {
	output Output
	err    error
}

// invoke runs the callback, enforcing the registration timeout when present.
func (r *Registry) invoke(
	ctx context.Context,
	callbackID string,
	reg Registration,
	input Input,
	toolUseID *string,
) (Output, error) {
	hookCtx := NewContext(ctx.Done())

	if reg.Timeout == nil {
		return reg.Callback(ctx, input, toolUseID, hookCtx)
	}

	// Race the callback against its timeout. The result channel is buffered
	// so a late-finishing callback never leaks its goroutine.
	cbCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan callbackResult, 1)

	go func() {
		output, err := reg.Callback(cbCtx, input, toolUseID, hookCtx)
		done <- callbackResult{output: output, err: err}
	}()

	select {
	case res := <-done:
		return res.output, res.err

	case <-time.After(*reg.Timeout):
		return nil, &sdkerrors.HookTimeoutError{
			CallbackID: callbackID,
			Ceiling:    *reg.Timeout,
		}

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

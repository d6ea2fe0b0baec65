package control

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	sdkerrors "github.com/ya-luotao/claude-agent-sdk-go/internal/errors"
)

// Transport defines the minimal interface needed for control protocol operations.
//
// This interface is satisfied by the CLITransport but allows for testing
// with mock transports.
type Transport interface {
	ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error)
	SendMessage(ctx context.Context, data []byte) error
}

// Mux shares one transport between the application-visible message stream and
// the bidirectional control channel with the Claude CLI.
//
// The Mux handles:
//   - Sending control_request messages with unique request IDs
//   - Receiving and routing control_response messages to waiting requests
//   - Request timeout enforcement
//   - Handler registration for incoming control_request messages from the CLI
//   - Cooperative cancellation of in-flight inbound requests
//   - Forwarding non-control messages to consumers via the Messages channel
//
// The Mux must be started with Start() before use and manages its own
// goroutine for reading and routing messages.
type Mux struct {
	log       *slog.Logger
	transport Transport

	// Outbound control requests require bidirectional stdin. In one-shot
	// --print mode stdin closes after the prompt, so SendRequest is refused.
	streaming bool

	// Outbound request tracking
	pendingMu sync.RWMutex
	pending   map[string]*pendingRequest

	// In-flight inbound operation tracking for cancellation support
	inFlightMu sync.RWMutex
	inFlight   map[string]*inFlightOperation

	// Handler registry for incoming requests
	handlersMu sync.RWMutex
	handlers   map[string]Handler

	// Non-control messages forwarded to consumers
	messages chan map[string]any

	// Fatal error handling - stores error and broadcasts via done channel
	errMu    sync.RWMutex
	fatalErr error

	// Lifecycle management
	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// pendingRequest tracks an outgoing request awaiting response.
type pendingRequest struct {
	subtype  string
	response chan *ControlResponse
}

// inFlightOperation tracks an incoming control request being handled.
type inFlightOperation struct {
	requestID string
	subtype   string
	cancel    context.CancelFunc
	startTime time.Time
	completed bool
}

// NewMux creates a new control protocol multiplexer.
//
// The logger will receive debug, info, warn, and error messages during
// protocol operations. The transport must be connected before calling Start().
func NewMux(log *slog.Logger, transport Transport) *Mux {
	return NewMuxWithMode(log, transport, true)
}

// NewMuxWithMode creates a multiplexer with explicit streaming mode.
//
// When streaming is false the mux still routes inbound control traffic and
// forwards data messages, but SendRequest returns ErrNotStreaming.
func NewMuxWithMode(log *slog.Logger, transport Transport, streaming bool) *Mux {
	return &Mux{
		log:       log.With("component", "control"),
		transport: transport,
		streaming: streaming,
		pending:   make(map[string]*pendingRequest, 10),
		inFlight:  make(map[string]*inFlightOperation, 10),
		handlers:  make(map[string]Handler, 10),
		messages:  make(chan map[string]any, 100), // Buffered to avoid blocking during initialization
		done:      make(chan struct{}),
	}
}

// closeDone safely closes the done channel exactly once.
func (m *Mux) closeDone() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

// SetFatalError stores a fatal error and broadcasts to all waiters by closing done.
func (m *Mux) SetFatalError(err error) {
	m.errMu.Lock()

	if m.fatalErr == nil {
		m.fatalErr = err
	}

	m.errMu.Unlock()

	m.closeDone()
}

// FatalError returns the fatal error if one occurred.
func (m *Mux) FatalError() error {
	m.errMu.RLock()
	defer m.errMu.RUnlock()

	return m.fatalErr
}

// Done returns a channel that is closed when the mux stops.
func (m *Mux) Done() <-chan struct{} {
	return m.done
}

// Start begins reading messages from the transport and routing control messages.
//
// This method spawns a goroutine that reads from the transport and routes
// control_request, control_response, and control_cancel_request messages.
// The goroutine stops when the context is cancelled or the transport is closed.
//
// Start must be called before SendRequest or any handlers will work.
func (m *Mux) Start(ctx context.Context) error {
	m.log.Debug("Starting control mux")

	messages, errs := m.transport.ReadMessages(ctx)

	m.wg.Add(1)

	go m.readLoop(ctx, messages, errs)

	m.log.Info("Control mux started")

	return nil
}

// Stop gracefully shuts down the mux.
//
// This method signals the read loop to stop, cancels all in-flight operations,
// and waits for completion. It's safe to call Stop multiple times.
func (m *Mux) Stop() {
	m.log.Debug("Stopping control mux")

	m.closeDone()

	m.CancelAllInFlight()
	m.wg.Wait()
	m.log.Info("Control mux stopped")
}

// Messages returns a channel for receiving non-control messages.
//
// The mux reads all messages from the transport, handles control messages
// internally, and forwards regular messages through this channel. Consumers
// should read from this channel instead of calling transport.ReadMessages()
// directly.
//
// The channel is closed when the mux stops or the transport closes.
// Use Done() and FatalError() to detect and retrieve transport errors.
func (m *Mux) Messages() <-chan map[string]any {
	return m.messages
}

// SendRequest sends a control request and waits for the response.
//
// This method generates a unique request ID, sends the control_request,
// and blocks until a matching control_response is received or the timeout
// ceiling expires.
//
// Returns an error if the request fails to send, times out (a typed
// RequestTimeoutError naming the subtype), the mux stops (the fatal error,
// so a transport failure resolves every pending request), or the CLI
// returns an error response.
func (m *Mux) SendRequest(
	ctx context.Context,
	subtype string,
	payload map[string]any,
	timeout time.Duration,
) (*ControlResponse, error) {
	if !m.streaming {
		return nil, fmt.Errorf("%s: %w", subtype, sdkerrors.ErrNotStreaming)
	}

	// Generate unique request ID
	requestID := m.generateRequestID()

	m.log.Debug("Sending control request", "request_id", requestID, "subtype", subtype)

	// Create pending request tracker
	responseChan := make(chan *ControlResponse, 1)
	pending := &pendingRequest{
		subtype:  subtype,
		response: responseChan,
	}

	m.pendingMu.Lock()
	m.pending[requestID] = pending
	m.pendingMu.Unlock()

	// Build nested request structure
	requestPayload := map[string]any{"subtype": subtype}
	maps.Copy(requestPayload, payload)

	req := &ControlRequest{
		Type:      "control_request",
		RequestID: requestID,
		Request:   requestPayload,
	}

	data, err := json.Marshal(req)
	if err != nil {
		m.removePending(requestID)
		m.log.Error("Failed to marshal control request", "error", err)

		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if err := m.transport.SendMessage(ctx, data); err != nil {
		m.removePending(requestID)
		m.log.Error("Failed to send control request", "error", err)

		return nil, fmt.Errorf("send request: %w", err)
	}

	m.log.Debug("Control request sent, waiting for response", "request_id", requestID)

	// Wait for response with timeout
	select {
	case resp := <-responseChan:
		if resp.IsError() {
			errMsg := resp.ErrorMessage()
			m.log.Warn("Control request returned error", "request_id", requestID, "error", errMsg)

			return nil, fmt.Errorf("request error: %s", errMsg)
		}

		m.log.Debug("Received control response", "request_id", requestID)

		return resp, nil

	case <-m.done:
		// Mux stopped (possibly due to transport error) - fail fast
		m.removePending(requestID)

		if err := m.FatalError(); err != nil {
			m.log.Warn("Transport error during request", "request_id", requestID, "error", err)

			return nil, fmt.Errorf("transport error: %w", err)
		}

		m.log.Debug("Mux stopped during request", "request_id", requestID)

		return nil, sdkerrors.ErrMuxStopped

	case <-time.After(timeout):
		m.removePending(requestID)

		m.log.Warn("Control request timed out", "request_id", requestID, "subtype", subtype, "timeout", timeout)

		return nil, &sdkerrors.RequestTimeoutError{Subtype: subtype, Ceiling: timeout}

	case <-ctx.Done():
		m.removePending(requestID)

		m.log.Debug("Control request cancelled", "request_id", requestID)

		return nil, ctx.Err()
	}
}

// removePending deletes a pending request entry, if still present.
func (m *Mux) removePending(requestID string) {
	m.pendingMu.Lock()
	delete(m.pending, requestID)
	m.pendingMu.Unlock()
}

// RegisterHandler registers a handler for incoming control requests.
//
// When the CLI sends a control_request with the specified subtype, the handler
// will be invoked. The handler should return a payload map or an error.
//
// Only one handler can be registered per subtype. Registering a handler for
// the same subtype twice will override the previous handler.
func (m *Mux) RegisterHandler(subtype string, handler Handler) {
	m.handlersMu.Lock()
	defer m.handlersMu.Unlock()

	m.log.Debug("Registering control request handler", "subtype", subtype)
	m.handlers[subtype] = handler
}

// readLoop reads messages from the transport and routes control messages.
//
// On exit every pending outbound request is force-resolved: the fatal error
// (if any) is recorded first, then done is closed so each waiter in
// SendRequest observes the same terminal condition exactly once.
func (m *Mux) readLoop(
	ctx context.Context,
	messages <-chan map[string]any,
	errs <-chan error,
) {
	defer m.wg.Done()
	defer close(m.messages)
	defer m.failPending()
	defer m.log.Debug("Control read loop stopped")

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				m.log.Debug("Message channel closed")

				return
			}

			m.handleMessage(ctx, msg)

		case err, ok := <-errs:
			if !ok {
				m.log.Debug("Error channel closed")

				return
			}

			if err != nil {
				m.log.Debug("Transport error in control mux", "error", err)
				m.SetFatalError(err)

				return
			}

		case <-m.done:
			m.log.Debug("Control mux stop signal received")

			return

		case <-ctx.Done():
			m.log.Debug("Context cancelled in control read loop")

			return
		}
	}
}

// failPending broadcasts loop termination to pending request waiters and
// clears the pending table. Waiters pick up the fatal error (or the stopped
// sentinel) through the done channel in SendRequest.
func (m *Mux) failPending() {
	m.closeDone()

	m.pendingMu.Lock()
	clear(m.pending)
	m.pendingMu.Unlock()
}

// handleMessage routes a message based on its type.
func (m *Mux) handleMessage(ctx context.Context, msg map[string]any) {
	msgType, _ := msg["type"].(string)

	switch msgType {
	case "control_response":
		m.handleControlResponse(msg)

	case "control_request":
		m.handleControlRequest(ctx, msg)

	case "control_cancel_request":
		m.handleCancelRequest(msg)

	default:
		// Forward non-control messages to consumers
		select {
		case m.messages <- msg:
		case <-m.done:
		case <-ctx.Done():
		}
	}
}

// handleControlResponse routes a response to the waiting request.
// Responses with no matching pending entry (already timed out, duplicated,
// or never ours) are dropped.
func (m *Mux) handleControlResponse(msg map[string]any) {
	// Extract from nested response
	responseData, ok := msg["response"].(map[string]any)
	if !ok {
		m.log.Warn("Control response missing 'response' field")

		return
	}

	requestID := wireRequestID(responseData)
	if requestID == "" {
		m.log.Warn("Control response missing request_id in response")

		return
	}

	m.log.Debug("Received control response", "request_id", requestID)

	// Find and claim pending request atomically
	m.pendingMu.Lock()

	pending, exists := m.pending[requestID]
	if exists {
		delete(m.pending, requestID)
	}

	m.pendingMu.Unlock()

	if !exists {
		m.log.Warn("No pending request for control response", "request_id", requestID)

		return
	}

	// Build ControlResponse with nested format
	resp := &ControlResponse{
		Type:     "control_response",
		Response: responseData,
	}

	// Send to waiting goroutine (we own it now, blocking is safe since channel is buffered)
	pending.response <- resp
}

// handleControlRequest invokes the registered handler for an incoming request.
//
// The handler runs in its own goroutine so the read loop stays free to
// process further messages, including the cancellation of this very request.
// Every handler outcome, success, error, or cancellation, is converted to
// exactly one control_response; nothing propagates out of the read loop.
func (m *Mux) handleControlRequest(ctx context.Context, msg map[string]any) {
	requestID := wireRequestID(msg)
	if requestID == "" {
		m.log.Warn("Control request missing request_id")

		return
	}

	requestData, ok := msg["request"].(map[string]any)
	if !ok {
		m.log.Warn("Control request missing 'request' field")

		return
	}

	// Build ControlRequest with nested format
	req := &ControlRequest{
		Type:      "control_request",
		RequestID: requestID,
		Request:   requestData,
	}

	subtype := req.Subtype()

	m.log.Debug("Received control request from CLI", "request_id", requestID, "subtype", subtype)

	// Find handler
	m.handlersMu.RLock()
	handler, exists := m.handlers[subtype]
	m.handlersMu.RUnlock()

	if !exists {
		m.log.Warn("No handler registered for control request subtype", "subtype", subtype)
		m.sendErrorResponse(ctx, requestID, "no handler registered for subtype: "+subtype)

		return
	}

	// Create cancellable context for the operation
	opCtx, cancel := context.WithCancel(ctx)

	// Register in-flight operation for cancellation support
	op := &inFlightOperation{
		requestID: requestID,
		subtype:   subtype,
		cancel:    cancel,
		startTime: time.Now(),
		completed: false,
	}

	m.inFlightMu.Lock()
	m.inFlight[requestID] = op
	m.inFlightMu.Unlock()

	// Run handler in goroutine so the read loop can process cancel requests
	m.wg.Go(func() {
		// Cleanup: mark completed and remove from map
		defer func() {
			m.inFlightMu.Lock()
			defer m.inFlightMu.Unlock()

			op.completed = true

			delete(m.inFlight, requestID)

			cancel()
		}()

		type handlerResult struct {
			payload map[string]any
			err     error
		}

		// The handler runs in its own goroutine so a callback that ignores the
		// cancellation signal cannot hold the response hostage. The channel is
		// buffered: a late result from an abandoned handler is simply dropped.
		resultCh := make(chan handlerResult, 1)

		go func() {
			// A panicking handler still produces its single error response.
			defer func() {
				if r := recover(); r != nil {
					m.log.Error("Handler panicked", "request_id", requestID, "subtype", subtype, "panic", r)
					resultCh <- handlerResult{err: fmt.Errorf("handler panic: %v", r)}
				}
			}()

			payload, err := handler(opCtx, req)
			resultCh <- handlerResult{payload: payload, err: err}
		}()

		select {
		case res := <-resultCh:
			// A cancelled request yields exactly one error response
			if opCtx.Err() == context.Canceled {
				m.log.Debug("Handler was cancelled", "request_id", requestID)
				m.sendErrorResponse(ctx, requestID, sdkerrors.ErrRequestCancelled.Error())

				return
			}

			if res.err != nil {
				m.log.Warn("Handler returned error", "request_id", requestID, "error", res.err.Error())
				m.sendErrorResponse(ctx, requestID, res.err.Error())

				return
			}

			m.sendSuccessResponse(ctx, requestID, res.payload)

		case <-opCtx.Done():
			// The peer must never be left waiting after a cancel: respond now
			// even if the callback never honors the cancellation signal.
			m.log.Debug("Handler was cancelled", "request_id", requestID)
			m.sendErrorResponse(ctx, requestID, sdkerrors.ErrRequestCancelled.Error())
		}
	})
}

// handleCancelRequest handles control_cancel_request messages from the CLI.
//
// It cancels the in-flight operation's context; the operation's handler
// goroutine then emits the single error response for that request.
// An unknown or already-completed request id is a no-op: no separate
// acknowledgment message exists in the protocol.
func (m *Mux) handleCancelRequest(msg map[string]any) {
	requestID := wireRequestID(msg)
	if requestID == "" {
		m.log.Warn("Cancel request missing request_id")

		return
	}

	m.log.Debug("Received cancel request", "request_id", requestID)

	m.inFlightMu.Lock()
	defer m.inFlightMu.Unlock()

	op, exists := m.inFlight[requestID]
	if !exists {
		m.log.Debug("Cancel request for unknown operation", "request_id", requestID)

		return
	}

	if !op.completed {
		op.cancel()
	}
}

// sendSuccessResponse sends a successful control response.
func (m *Mux) sendSuccessResponse(
	ctx context.Context,
	requestID string,
	payload map[string]any,
) {
	resp := &ControlResponse{
		Type:     "control_response",
		Response: responseEnvelope(requestID, "success"),
	}
	resp.Response["response"] = payload

	data, err := json.Marshal(resp)
	if err != nil {
		m.log.Error("Failed to marshal control response", "error", err)

		return
	}

	if err := m.transport.SendMessage(ctx, data); err != nil {
		m.log.Error("Failed to send control response", "error", err)
	}
}

// sendErrorResponse sends an error control response.
func (m *Mux) sendErrorResponse(
	ctx context.Context,
	requestID string,
	errMsg string,
) {
	resp := &ControlResponse{
		Type:     "control_response",
		Response: responseEnvelope(requestID, "error"),
	}
	resp.Response["error"] = errMsg

	data, err := json.Marshal(resp)
	if err != nil {
		m.log.Error("Failed to marshal error response", "error", err)

		return
	}

	if err := m.transport.SendMessage(ctx, data); err != nil {
		// Don't log error if context was cancelled (expected during shutdown)
		if ctx.Err() != nil {
			m.log.Debug("Could not send error response during shutdown", "error", err)

			return
		}

		m.log.Error("Failed to send error response", "error", err)
	}
}

// responseEnvelope builds the nested response map, carrying the correlation
// id under both spellings for CLI version compatibility.
func responseEnvelope(requestID, subtype string) map[string]any {
	return map[string]any{
		"subtype":    subtype,
		"request_id": requestID,
		"requestId":  requestID,
	}
}

// generateRequestID creates a unique request ID using ULID.
func (m *Mux) generateRequestID() string {
	return ulid.Make().String()
}

// CancelAllInFlight cancels all in-flight operations.
// This is called during Stop() to ensure clean shutdown.
func (m *Mux) CancelAllInFlight() {
	m.inFlightMu.Lock()
	defer m.inFlightMu.Unlock()

	for _, op := range m.inFlight {
		if !op.completed {
			op.cancel()
		}
	}
}

// Package control implements the bidirectional control protocol spoken with
// the Claude CLI over the shared stdio transport.
//
// A single Mux owns the transport's read side. Its reading loop classifies
// every inbound line as a control response (resolving a pending outbound
// request), a control request (spawning one concurrent handler per request),
// a cancellation (cancelling the matching in-flight handler), or an ordinary
// data message (forwarded to the Messages channel for the API consumer).
//
// Session layers the application-facing callbacks on top of the Mux: hook
// dispatch via callback ids, the tool permission check, and routing of
// mcp_message envelopes to in-process tool servers.
package control

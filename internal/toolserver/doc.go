// Package toolserver implements an in-process Model Context Protocol server.
//
// The server lets applications register tools, resources, and prompts that the
// CLI can invoke during a session without spawning a separate server process.
// Registrations are keyed by name (tools, prompts) or URI (resources) and are
// immutable once the session starts serving requests.
//
// The server speaks JSON-RPC 2.0: the protocol multiplexer unwraps the
// {server_name, message} envelope from an mcp_message control request and
// hands the inner JSON-RPC request to HandleMessage, which routes by method
// and always produces a JSON-RPC response object, encoding failures as
// JSON-RPC error objects rather than Go errors.
package toolserver

// Package errors defines the SDK's error taxonomy: connection errors,
// timeout errors, protocol errors, and sentinels for commonly checked
// conditions.
package errors

// Package errors provides unified, structured error handling for the
// dependency engine: machine-readable codes, detail maps, and cause
// wrapping, so callers branch on the failure kind instead of parsing
// messages. Absence (NOT_FOUND) is the only recoverable condition;
// every binding error is terminal for that construction attempt.
package errors

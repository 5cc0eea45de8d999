// Package apperrors defines the error types shared by the command line,
// the dashboard and the HTTP server, and maps them to process exit codes.
// Every wrapper type implements Unwrap so callers can inspect the chain
// with errors.Is and errors.As.
package apperrors

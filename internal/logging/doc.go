// Package logging wraps zerolog behind a small Logger interface so the
// HTTP server can be given a test logger.
package logging

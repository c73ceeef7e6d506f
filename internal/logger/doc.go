// Package logger wraps a zap sugared logger behind context-aware helpers.
// Records below the error level go to stdout, errors and fatals go to stderr,
// so progress output and diagnostics can be separated by the shell.
package logger

// Package utils holds small helpers shared by the client and service layers:
// filename sanitizing, duration formatting, regex group extraction and content-type checks.
package utils

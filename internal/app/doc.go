// Package app wires the Spotify catalog client, the lyrics client and the packaging service
// from an explicit configuration and runs the command-line operations on top of them.
package app

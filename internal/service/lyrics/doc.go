// Package lyrics resolves Spotify URLs to tracks and packages their lyrics into a zip archive of .lrc files.
package lyrics

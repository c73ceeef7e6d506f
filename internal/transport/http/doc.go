// Package http provides http.RoundTripper decorators shared by the catalog and lyrics clients:
// debug-level request/response dumps and User-Agent injection.
package http

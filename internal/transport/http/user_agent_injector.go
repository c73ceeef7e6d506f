package http

import (
	"net/http"

	"github.com/oshokin/lyrics-grabber/internal/utils"
)

// Header names managed by the injector.
const (
	userAgentHeader = "User-Agent"
	acceptHeader    = "Accept"
	jsonContentType = "application/json"
)

// UserAgentInjector is a custom http.RoundTripper that fills in User-Agent and Accept headers
// when the caller left them empty. Both upstream services answer JSON only.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// NewUserAgentInjector creates and returns a new instance of UserAgentInjector.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip injects missing headers into a copy of the request and forwards it.
// The original request is never modified, as required by the http.RoundTripper contract.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	missingUserAgent := req.Header.Get(userAgentHeader) == ""
	missingAccept := req.Header.Get(acceptHeader) == ""

	if !missingUserAgent && !missingAccept {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())

	if missingUserAgent {
		clone.Header.Set(userAgentHeader, t.userAgentProvider.GetUserAgent())
	}

	if missingAccept {
		clone.Header.Set(acceptHeader, jsonContentType)
	}

	return t.next.RoundTrip(clone)
}

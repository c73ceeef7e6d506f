package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/oshokin/lyrics-grabber/internal/logger"
	"github.com/oshokin/lyrics-grabber/internal/utils"
)

// DefaultMaxLogLength is the default maximum size (in bytes) of a logged request or response dump.
const DefaultMaxLogLength = 64 * 1024

// redactedHeaders lists headers whose values never reach the log.
//
//nolint:gochecknoglobals // Immutable lookup table.
var redactedHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses at debug level.
// Credentials carried in headers are masked before dumping.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	requestDump := t.dumpRequest(req)
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.Redacted(), err)

		return nil, err
	}

	responseDump := t.dumpResponse(resp)

	logger.Debugf(ctx, "%s %s [%d] %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.Path, resp.StatusCode, duration, requestDump, responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	masked := req.Clone(req.Context())
	maskHeaders(masked.Header)

	// Bodies are skipped: token requests carry the client secret in form values.
	dump, err := httputil.DumpRequestOut(masked, false)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	header := resp.Header
	resp.Header = header.Clone()
	maskHeaders(resp.Header)

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(header.Get("Content-Type")))

	resp.Header = header

	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}

func maskHeaders(header http.Header) {
	for _, name := range redactedHeaders {
		if header.Get(name) != "" {
			header.Set(name, "[redacted]")
		}
	}
}

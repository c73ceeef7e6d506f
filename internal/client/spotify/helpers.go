package spotify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// fetchJSON fetches JSON from the URI built from the given path elements.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSON[T any](c *ClientImpl, ctx context.Context, query url.Values, pathElements ...string) (*T, error) {
	route, err := url.JoinPath(c.baseURL, pathElements...)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		request.URL.RawQuery = query.Encode()
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, wrapTransportError(err)
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyLength))

		return nil, statusError(response.StatusCode, body)
	}

	var result T
	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", request.URL.Path, err)
	}

	return &result, nil
}

// wrapTransportError marks token endpoint rejections as authentication failures.
func wrapTransportError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %s", ErrUnauthorized, tokenErrorMessage(retrieveErr))
	}

	return err
}

// statusError maps a non-success status code to one of the package errors.
func statusError(statusCode int, body []byte) error {
	var sentinel error

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrUnauthorized
	// Spotify answers 400 for malformed IDs.
	case http.StatusNotFound, http.StatusBadRequest:
		sentinel = ErrNotFound
	default:
		sentinel = ErrUnexpectedHTTPStatus
	}

	message := apiErrorMessage(body)
	if message == "" {
		return fmt.Errorf("%w: %d", sentinel, statusCode)
	}

	return fmt.Errorf("%w: %d %s", sentinel, statusCode, message)
}

// apiErrorMessage extracts a human-readable message from a Spotify error body.
// API errors use {"error": {"status", "message"}}, the accounts service uses
// {"error", "error_description"}.
func apiErrorMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}

	for _, path := range []string{"error.message", "error_description", "error"} {
		if value := gjson.GetBytes(body, path); value.Type == gjson.String && value.Str != "" {
			return value.Str
		}
	}

	return ""
}

func tokenErrorMessage(err *oauth2.RetrieveError) string {
	if message := apiErrorMessage(err.Body); message != "" {
		return message
	}

	if err.ErrorDescription != "" {
		return err.ErrorDescription
	}

	if err.Response != nil {
		return err.Response.Status
	}

	return err.Error()
}

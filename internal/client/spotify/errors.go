package spotify

import "errors"

var (
	// ErrUnauthorized indicates that the client credentials were rejected or the token is not accepted.
	ErrUnauthorized = errors.New("spotify authentication failed")
	// ErrNotFound indicates that the requested entity does not exist or its ID is malformed.
	ErrNotFound = errors.New("spotify entity not found")
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrEmptyToken indicates that the token endpoint answered without an access token.
	ErrEmptyToken = errors.New("token endpoint returned an empty access token")
)

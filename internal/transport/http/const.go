package http

import (
	"time"

	"github.com/oshokin/lyrics-grabber/internal/version"
)

// DefaultTimeout is the default timeout duration for HTTP requests.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the application to the catalog and lyrics services.
//
//nolint:gochecknoglobals // Derived from the build version, effectively a constant.
var DefaultUserAgent = "lyrics-grabber/" + version.Short() + " (+https://github.com/oshokin/lyrics-grabber)"

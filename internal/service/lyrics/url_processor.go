package lyrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oshokin/lyrics-grabber/internal/utils"
)

// URLResolver defines the interface for turning a catalog link into an entity.
type URLResolver interface {
	// Resolve parses a Spotify link. It fails with ErrInvalidURL for anything else.
	Resolve(rawURL string) (*CatalogEntity, error)
}

// URLResolverImpl implements the URLResolver interface.
type URLResolverImpl struct {
	// pattern matches catalog links and captures their kind and ID.
	pattern *regexp.Regexp
}

// catalogURLPattern matches links such as https://open.spotify.com/album/4m2880jivSbbyEGAKfITCa.
// A locale segment (intl-de) and a query string or fragment are tolerated.
const catalogURLPattern = `^https?://open\.spotify\.com/(?:intl-[a-zA-Z-]+/)?` +
	`(?P<kind>track|album|playlist)/(?P<id>[a-zA-Z0-9]+)/?(?:[?#].*)?$`

// NewURLResolver creates and returns a new instance of URLResolverImpl.
func NewURLResolver() URLResolver {
	return &URLResolverImpl{
		pattern: regexp.MustCompile(catalogURLPattern),
	}
}

// Resolve parses a Spotify link into its kind and ID.
func (r *URLResolverImpl) Resolve(rawURL string) (*CatalogEntity, error) {
	groups := utils.ExtractNamedGroups(r.pattern, strings.TrimSpace(rawURL), "kind", "id")
	if groups == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	return &CatalogEntity{
		Kind: EntityKind(groups["kind"]),
		ID:   groups["id"],
	}, nil
}

package utils

import (
	"errors"
	"fmt"
	"mime"
	"regexp"
	"strings"
)

// millisecondsInSecond and secondsInMinute drive the integer duration arithmetic.
const (
	millisecondsInSecond = 1000
	secondsInMinute      = 60
)

// ErrNegativeDuration indicates that a duration below zero was passed to FormatDuration.
var ErrNegativeDuration = errors.New("duration cannot be negative")

var (
	// invalidCharsPattern matches the characters that are forbidden in filenames on common filesystems: / \ : * ? " < > |.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	invalidCharsPattern = regexp.MustCompile(`[/\\:*?"<>|]`)

	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/x-www-form-urlencoded$`),
	}
)

// SanitizeFilename replaces every forbidden filename character with an underscore
// and trims surrounding whitespace. It never fails.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(invalidCharsPattern.ReplaceAllString(name, "_"))
}

// FormatDuration renders milliseconds as "m:ss" using integer floor division.
// Minutes are not wrapped into hours, so one hour is "60:00".
func FormatDuration(durationMs int64) (string, error) {
	if durationMs < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeDuration, durationMs)
	}

	totalSeconds := durationMs / millisecondsInSecond

	return fmt.Sprintf("%d:%02d", totalSeconds/secondsInMinute, totalSeconds%secondsInMinute), nil
}

// ExtractNamedGroups returns the values of the requested named capturing groups from a regex match.
// It returns nil if the input does not match.
func ExtractNamedGroups(re *regexp.Regexp, input string, groupNames ...string) map[string]string {
	match := re.FindStringSubmatch(input)
	if match == nil {
		return nil
	}

	result := make(map[string]string, len(groupNames))

	for i, name := range re.SubexpNames() {
		for _, wanted := range groupNames {
			if name == wanted {
				result[name] = match[i]
			}
		}
	}

	return result
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

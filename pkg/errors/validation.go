package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateDataFilename checks a data filename received from the API or
// CLI. Only simple basenames pass, so callers can join the result onto
// their data directory without escaping it: no separators, no "..", no
// hidden files, no control characters, at most 256 characters.
func ValidateDataFilename(filename string) error {
	switch {
	case filename == "":
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	case len(filename) > 256:
		return New(ErrCodeInvalidPath, "filename too long (max 256 characters)")
	case strings.IndexFunc(filename, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "filename contains control characters")
	case strings.ContainsAny(filename, `/\`):
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	case strings.Contains(filename, ".."):
		return New(ErrCodeInvalidPath, "filename cannot contain path traversal sequences (..)")
	case strings.HasPrefix(filename, "."):
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}
	return nil
}

// ValidateOutputPath checks an artifact destination path: non-empty, at
// most 500 characters, no control characters.
func ValidateOutputPath(path string) error {
	const maxLen = 500
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	case len(path) > maxLen:
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxLen)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "output path contains control characters")
	}
	return nil
}

// ValidateURL checks that rawURL parses and uses the http or https
// scheme with a host. Remote sources are fetched from it directly, so
// other schemes are rejected up front.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

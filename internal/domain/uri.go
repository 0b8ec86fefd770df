package domain

import (
	"fmt"
	"strings"
)

const ipfsScheme = "ipfs://"

// IsRecognizedURI reports whether a curation URI uses a recognized
// content-addressed scheme
func IsRecognizedURI(uri string) bool {
	return strings.HasPrefix(strings.ToLower(uri), ipfsScheme)
}

// ExtractDataHash returns the content identifier of a recognized curation
// URI (e.g. "ipfs://Qm..." -> "Qm...")
func ExtractDataHash(uri string) (string, error) {
	if !IsRecognizedURI(uri) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURI, uri)
	}

	hash := strings.TrimSuffix(uri[len(ipfsScheme):], "/")
	if hash == "" {
		return "", fmt.Errorf("%w: empty content identifier", ErrUnsupportedURI)
	}

	return hash, nil
}

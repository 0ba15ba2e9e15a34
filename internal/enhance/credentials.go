package enhance

import (
	"errors"
	"fmt"
	"strings"
)

// minAPIKeyLength is the shortest credential accepted; real keys for the
// supported services are all longer.
const minAPIKeyLength = 16

// placeholderKeys are template values that ship in sample configs and
// must never reach the network.
var placeholderKeys = []string{
	"your-api-key-here",
	"your-deepai-api-key-here",
	"changeme",
}

// ErrInvalidCredentials is returned when the configured API key fails the
// precondition check. The enhancement path short-circuits before any
// request is made.
var ErrInvalidCredentials = errors.New("invalid image generation credentials")

// ValidateAPIKey checks an API key before any network activity: it must
// be non-empty, at least minAPIKeyLength characters, and not a known
// placeholder.
func ValidateAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidCredentials)
	}
	if len(key) < minAPIKeyLength {
		return fmt.Errorf("%w: key too short", ErrInvalidCredentials)
	}
	lower := strings.ToLower(key)
	for _, placeholder := range placeholderKeys {
		if lower == placeholder || strings.HasPrefix(lower, "your-") {
			return fmt.Errorf("%w: key is a placeholder value", ErrInvalidCredentials)
		}
	}
	return nil
}

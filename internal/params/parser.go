package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
// Keys are trimmed; values are kept verbatim so search terms may carry
// leading spaces or '=' characters.
//
// Example:
//
//	params, err := ParseKeyValuePairs([]string{"customer_id=7", "term=50% off"})
//	// Returns: map[string]string{"customer_id": "7", "term": "50% off"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q is not in key=value format (example: --param customer_id=7)", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("parameter has empty key: %q", pair)
		}

		result[key] = value
	}

	return result, nil
}

// Merge combines parameter maps. Later maps override earlier ones.
func Merge(sources ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

package discovery

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseManifest parses a manifest body: a JSON array of location strings.
//
// Blank entries are dropped. An empty or non-array document is an error
// so the resolver falls through to directory inference.
func parseManifest(data []byte) ([]string, error) {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("not a JSON string array: %w", err)
	}

	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) != "" {
			cleaned = append(cleaned, e)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("manifest is empty")
	}
	return cleaned, nil
}

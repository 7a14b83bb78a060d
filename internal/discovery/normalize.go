package discovery

import "strings"

// Normalize converts a raw location entry into canonical form:
// whitespace is trimmed; absolute http(s) and data URIs pass through
// unchanged, as do entries already marked relative ("./..."); anything
// else gets a "./" prefix.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if hasAbsolutePrefix(s) || strings.HasPrefix(s, "./") {
		return s
	}
	return "./" + s
}

// NormalizeAll normalizes every entry in order, dropping blanks.
func NormalizeAll(raws []string) []string {
	out := make([]string, 0, len(raws))
	for _, r := range raws {
		if n := Normalize(r); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func hasAbsolutePrefix(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}

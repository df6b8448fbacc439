package headers

import (
	"net/http"
	"strings"
)

// ParseHeaders converts header strings ("Key: Value") into a map keyed by canonical
// header name. Entries without a colon or with an empty name are skipped.
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string)
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		m[http.CanonicalHeaderKey(key)] = strings.TrimSpace(value)
	}
	return m
}

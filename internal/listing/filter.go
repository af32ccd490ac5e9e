package listing

import (
	"strings"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

// Filter returns the records whose URL or title contains query, ignoring case,
// in their original order. A blank query matches nothing: search results are
// only shown once something has been typed.
func Filter(records []urlinfo.Record, query string) []urlinfo.Record {
	if strings.TrimSpace(query) == "" {
		return []urlinfo.Record{}
	}
	needle := strings.ToLower(query)
	out := make([]urlinfo.Record, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.URL), needle) || strings.Contains(strings.ToLower(rec.Title), needle) {
			out = append(out, rec)
		}
	}
	return out
}

package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BuildLinkHeader renders next/prev relations, each carrying its cursor in the query.
func BuildLinkHeader(path string, query url.Values, next, prev string) string {
	var links []string
	for _, rel := range []struct{ name, cursor string }{{"next", next}, {"prev", prev}} {
		if rel.cursor == "" {
			continue
		}
		q := cloneValues(query)
		q.Set("cursor", rel.cursor)
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", path, q.Encode(), rel.name))
	}
	return strings.Join(links, ", ")
}

func withLimit(query url.Values, limit int) url.Values {
	q := cloneValues(query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

package pagination

import "net/url"

// Page is one window of a collection plus the cursors around it.
type Page[T any] struct {
	Items []T
	Total int
	Next  string
	Prev  string
	limit int
}

// Paginate slices items after the cursor position. A cursor naming an unknown ID restarts
// from the first item, since the backing collection is refetched on every request.
func Paginate[T any](items []T, cursor Cursor, limit int, id func(T) string) Page[T] {
	start := 0
	if cursor.After != "" {
		for i, item := range items {
			if id(item) == cursor.After {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(items))

	page := Page[T]{Items: items[start:end], Total: len(items), limit: limit}
	if end < len(items) && end > start {
		page.Next = Cursor{Kind: cursor.Kind, After: id(items[end-1])}.Encode()
	}
	switch {
	case start == 0:
	case start <= limit:
		page.Prev = Cursor{Kind: cursor.Kind}.Encode()
	default:
		page.Prev = Cursor{Kind: cursor.Kind, After: id(items[start-limit-1])}.Encode()
	}
	return page
}

// Link renders the page's RFC 8288 Link header for path, keeping the caller's query.
func (p Page[T]) Link(path string, query url.Values) string {
	return BuildLinkHeader(path, withLimit(query, p.limit), p.Next, p.Prev)
}

package pagination

import "strings"

// Searchable is implemented by list items that can be matched against a
// free-text query. SearchFields returns every rendered string a user could
// see for the item (code, état, importance, formatted dates, ...).
type Searchable interface {
	SearchFields() []string
}

// Page is one derived view over an in-memory list.
type Page[T Searchable] struct {
	PageItems  []T `json:"page_items"`
	TotalPages int `json:"total_pages"`
	Current    int `json:"current_page"`
}

// Derive filters items by case-insensitive substring match across all
// search fields, then slices out the requested page. The filter is stable:
// original list order is preserved. TotalPages is never below 1 and an
// out-of-range page is clamped rather than rejected, so a shrinking result
// set can never strand the caller on an empty page.
func Derive[T Searchable](items []T, query string, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 10
	}

	filtered := items
	if query != "" {
		q := strings.ToLower(query)
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if matches(item, q) {
				filtered = append(filtered, item)
			}
		}
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page[T]{
		PageItems:  filtered[start:end],
		TotalPages: totalPages,
		Current:    page,
	}
}

// DeriveFresh is Derive for a just-changed query: the page index resets to 1
// no matter where the user was, mirroring how every table view behaves when
// its search box changes.
func DeriveFresh[T Searchable](items []T, query string, pageSize int) Page[T] {
	return Derive(items, query, 1, pageSize)
}

func matches[T Searchable](item T, loweredQuery string) bool {
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), loweredQuery) {
			return true
		}
	}
	return false
}

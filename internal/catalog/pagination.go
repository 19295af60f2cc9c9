package catalog

// DefaultPageSize is the fixed page size used by catalog listings.
const DefaultPageSize = 10

// windowRadius is how many pages are shown on each side of the current page
// in pagination controls.
const windowRadius = 2

// Page describes a resolved listing page: the slice bounds into the filtered
// set and the derived totals.
type Page struct {
	Start      int `json:"-"`
	End        int `json:"-"`
	Number     int `json:"page"`
	Size       int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate resolves a 1-indexed page over a filtered set of totalItems
// records. The page number is clamped to [1, totalPages] and the returned
// bounds never exceed the set; an empty set yields page 1 with empty bounds.
func Paginate(totalItems, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalItems + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Start:      start,
		End:        end,
		Number:     page,
		Size:       pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// PageItem is one entry of the pagination controls: either a concrete page
// number or an ellipsis gap marker.
type PageItem struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Active   bool `json:"active,omitempty"`
}

// PageWindow builds the pagination controls for the given current page:
// first page, last page, a sliding window of pages within windowRadius of
// current, and ellipsis markers for the gaps. Returns nil when there is a
// single page or none, meaning no controls are rendered.
func PageWindow(current, totalPages int) []PageItem {
	if totalPages <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	items := make([]PageItem, 0, totalPages)
	prev := 0
	for p := 1; p <= totalPages; p++ {
		show := p == 1 || p == totalPages ||
			(p >= current-windowRadius && p <= current+windowRadius)
		if !show {
			continue
		}
		if prev != 0 && p-prev > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: p, Active: p == current})
		prev = p
	}
	return items
}

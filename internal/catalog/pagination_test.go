package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	testCases := []struct {
		name       string
		totalItems int
		page       int
		pageSize   int
		expected   Page
	}{
		{
			name: "empty set yields page 1 with empty bounds", totalItems: 0, page: 1, pageSize: 10,
			expected: Page{Start: 0, End: 0, Number: 1, Size: 10, TotalItems: 0, TotalPages: 0},
		},
		{
			name: "single partial page", totalItems: 4, page: 1, pageSize: 10,
			expected: Page{Start: 0, End: 4, Number: 1, Size: 10, TotalItems: 4, TotalPages: 1},
		},
		{
			name: "exact page boundary", totalItems: 20, page: 2, pageSize: 10,
			expected: Page{Start: 10, End: 20, Number: 2, Size: 10, TotalItems: 20, TotalPages: 2},
		},
		{
			name: "last page is partial", totalItems: 25, page: 3, pageSize: 10,
			expected: Page{Start: 20, End: 25, Number: 3, Size: 10, TotalItems: 25, TotalPages: 3},
		},
		{
			name: "page clamped to last", totalItems: 25, page: 99, pageSize: 10,
			expected: Page{Start: 20, End: 25, Number: 3, Size: 10, TotalItems: 25, TotalPages: 3},
		},
		{
			name: "page clamped to first", totalItems: 25, page: 0, pageSize: 10,
			expected: Page{Start: 0, End: 10, Number: 1, Size: 10, TotalItems: 25, TotalPages: 3},
		},
		{
			name: "zero page size falls back to default", totalItems: 15, page: 2, pageSize: 0,
			expected: Page{Start: 10, End: 15, Number: 2, Size: DefaultPageSize, TotalItems: 15, TotalPages: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Paginate(tc.totalItems, tc.page, tc.pageSize))
		})
	}
}

// Walking every page of a set must cover each item exactly once.
func TestPaginateCoversSetWithoutOverlap(t *testing.T) {
	const totalItems = 47
	const pageSize = 10

	seen := make(map[int]int)
	total := Paginate(totalItems, 1, pageSize).TotalPages
	for page := 1; page <= total; page++ {
		p := Paginate(totalItems, page, pageSize)
		for i := p.Start; i < p.End; i++ {
			seen[i]++
		}
	}

	assert.Len(t, seen, totalItems)
	for i, count := range seen {
		assert.Equal(t, 1, count, "item %d visited %d times", i, count)
	}
}

func TestPageWindow(t *testing.T) {
	page := func(n int) PageItem { return PageItem{Page: n} }
	active := func(n int) PageItem { return PageItem{Page: n, Active: true} }
	gap := PageItem{Ellipsis: true}

	testCases := []struct {
		name       string
		current    int
		totalPages int
		expected   []PageItem
	}{
		{name: "no controls for a single page", current: 1, totalPages: 1, expected: nil},
		{name: "no controls for zero pages", current: 1, totalPages: 0, expected: nil},
		{
			name: "small set shows every page", current: 2, totalPages: 4,
			expected: []PageItem{page(1), active(2), page(3), page(4)},
		},
		{
			name: "window at the start", current: 1, totalPages: 10,
			expected: []PageItem{active(1), page(2), page(3), gap, page(10)},
		},
		{
			name: "window in the middle", current: 5, totalPages: 10,
			expected: []PageItem{page(1), gap, page(3), page(4), active(5), page(6), page(7), gap, page(10)},
		},
		{
			name: "window at the end", current: 10, totalPages: 10,
			expected: []PageItem{page(1), gap, page(8), page(9), active(10)},
		},
		{
			name: "adjacent window needs no gap", current: 4, totalPages: 7,
			expected: []PageItem{page(1), page(2), page(3), active(4), page(5), page(6), page(7)},
		},
		{
			name: "current clamped above total", current: 42, totalPages: 6,
			expected: []PageItem{page(1), gap, page(4), page(5), active(6)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PageWindow(tc.current, tc.totalPages))
		})
	}
}

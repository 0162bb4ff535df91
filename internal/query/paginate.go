package query

import "demonlist/internal/catalog"

const DefaultPageSize = 12

type Page struct {
	Items      []catalog.Level
	Number     int
	TotalPages int
}

// Paginate slices a 1-based page out of items. Out-of-range page numbers
// clamp silently to the nearest valid page.
func Paginate(items []catalog.Level, size, number int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := (len(items) + size - 1) / size
	if total < 1 {
		total = 1
	}
	if number < 1 {
		number = 1
	}
	if number > total {
		number = total
	}
	start := (number - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page{Items: items[start:end], Number: number, TotalPages: total}
}

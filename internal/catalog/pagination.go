package catalog

import "strconv"

const DefaultPageSize = 20

// PageState is the cursor of one paged result list.
type PageState struct {
	Index      int
	Size       int
	TotalPages int
	Loading    bool
}

func NewPageState(size int) PageState {
	return PageState{Size: size}
}

// TotalPages is ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Slice returns the page-th window of items. Out-of-range pages are empty.
func Slice[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return []T{}
	}
	start := page * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// PageLink is one control of the pagination bar.
type PageLink struct {
	Page     int
	Label    string
	Current  bool
	Ellipsis bool
}

// PageNumbers lays out the first page, a window around current, the last
// page and ellipses for the gaps. Nothing is shown for a single page.
func PageNumbers(current, total int) []PageLink {
	if total <= 1 {
		return nil
	}
	link := func(p int) PageLink {
		return PageLink{Page: p, Label: strconv.Itoa(p + 1), Current: p == current}
	}

	links := []PageLink{link(0)}
	start := max(1, current-1)
	end := min(total-2, current+1)
	if start > 1 {
		links = append(links, PageLink{Ellipsis: true, Label: "..."})
	}
	for i := start; i <= end; i++ {
		links = append(links, link(i))
	}
	if end < total-2 {
		links = append(links, PageLink{Ellipsis: true, Label: "..."})
	}
	links = append(links, link(total-1))
	return links
}

// Pager bundles what the pagination template needs.
type Pager struct {
	Links   []PageLink
	Prev    int
	Next    int
	HasPrev bool
	HasNext bool
}

// NewPager returns nil when no controls should be drawn.
func NewPager(s PageState) *Pager {
	if s.TotalPages <= 1 || s.Loading {
		return nil
	}
	return &Pager{
		Links:   PageNumbers(s.Index, s.TotalPages),
		Prev:    s.Index - 1,
		Next:    s.Index + 1,
		HasPrev: s.Index != 0,
		HasNext: s.Index != s.TotalPages-1,
	}
}

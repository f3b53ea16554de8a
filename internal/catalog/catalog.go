package catalog

import "slices"

// SortKey orders the books of one fetched page.
type SortKey string

const (
	SortTitleAsc   SortKey = "title_asc"
	SortTitleDesc  SortKey = "title_desc"
	SortYearAsc    SortKey = "year_asc"
	SortYearDesc   SortKey = "year_desc"
	SortRatingDesc SortKey = "rating_desc"
)

const (
	RangeUpTo10      = "0-10"
	Range10To50      = "10-50"
	Range50To100     = "50-100"
	RangeMoreThan100 = "100+"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

var Genres = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy", "Mystery",
	"Romance", "Thriller", "Biography", "History", "Science",
}

var ChapterRanges = []Option{
	{Value: RangeUpTo10, Label: "Up to 10 chapters"},
	{Value: Range10To50, Label: "10 to 50 chapters"},
	{Value: Range50To100, Label: "50 to 100 chapters"},
	{Value: RangeMoreThan100, Label: "More than 100 chapters"},
}

var SortOptions = []Option{
	{Value: string(SortTitleAsc), Label: "Title A-Z"},
	{Value: string(SortTitleDesc), Label: "Title Z-A"},
	{Value: string(SortYearAsc), Label: "Year Oldest"},
	{Value: string(SortYearDesc), Label: "Year Newest"},
	{Value: string(SortRatingDesc), Label: "Highest Rating"},
}

func label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// FilterSet is one copy of the user's filter selection.
type FilterSet struct {
	Genres   []string
	Chapters []string
	Sort     SortKey
}

func DefaultFilterSet() FilterSet {
	return FilterSet{Genres: []string{}, Chapters: []string{}, Sort: SortTitleAsc}
}

// Clone returns a deep copy; the slices are never shared between copies.
func (f FilterSet) Clone() FilterSet {
	return FilterSet{
		Genres:   append([]string{}, f.Genres...),
		Chapters: append([]string{}, f.Chapters...),
		Sort:     f.Sort,
	}
}

func (f FilterSet) HasGenre(g string) bool    { return slices.Contains(f.Genres, g) }
func (f FilterSet) HasChapters(r string) bool { return slices.Contains(f.Chapters, r) }

// IsDefault reports whether the set filters nothing and keeps the default order.
func (f FilterSet) IsDefault() bool {
	return len(f.Genres) == 0 && len(f.Chapters) == 0 && f.Sort == SortTitleAsc
}

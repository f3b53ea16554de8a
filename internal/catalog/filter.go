package catalog

import (
	"sort"

	"booktracker/internal/entity"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter applies the genre and chapter predicates of f to books and sorts the
// survivors by f.Sort. The input slice is not modified.
func Filter(books []entity.Book, f FilterSet) []entity.Book {
	out := make([]entity.Book, 0, len(books))
	for _, b := range books {
		if matchesGenres(b, f.Genres) && matchesChapters(b, f.Chapters) {
			out = append(out, b)
		}
	}
	Sort(out, f.Sort)
	return out
}

// OR across the selection; an empty selection filters nothing.
func matchesGenres(b entity.Book, genres []string) bool {
	if len(genres) == 0 {
		return true
	}
	for _, g := range genres {
		if b.HasGenre(g) {
			return true
		}
	}
	return false
}

// A book without a chapter count passes every range.
func matchesChapters(b entity.Book, ranges []string) bool {
	if len(ranges) == 0 || b.Chapters == nil {
		return true
	}
	for _, r := range ranges {
		if InRange(*b.Chapters, r) {
			return true
		}
	}
	return false
}

// InRange reports whether a chapter count falls in the named range token.
// Unknown tokens match everything.
func InRange(chapters int, token string) bool {
	switch token {
	case RangeUpTo10:
		return chapters <= 10
	case Range10To50:
		return chapters > 10 && chapters <= 50
	case Range50To100:
		return chapters > 50 && chapters <= 100
	case RangeMoreThan100:
		return chapters > 100
	default:
		return true
	}
}

// Sort orders books in place. Missing years and ratings count as zero.
func Sort(books []entity.Book, key SortKey) {
	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.English)
	byTitle := func(a, b entity.Book) int { return col.CompareString(a.Title, b.Title) }

	var less func(i, j int) bool
	switch key {
	case SortTitleDesc:
		less = func(i, j int) bool { return byTitle(books[j], books[i]) < 0 }
	case SortYearAsc:
		less = func(i, j int) bool { return books[i].YearOrZero() < books[j].YearOrZero() }
	case SortYearDesc:
		less = func(i, j int) bool { return books[i].YearOrZero() > books[j].YearOrZero() }
	case SortRatingDesc:
		less = func(i, j int) bool { return books[i].RatingOrZero() > books[j].RatingOrZero() }
	default:
		less = func(i, j int) bool { return byTitle(books[i], books[j]) < 0 }
	}
	sort.SliceStable(books, less)
}

package catalog

import (
	"context"
	"testing"
	"time"

	"booktracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func titles(books []entity.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestFilter_ChapterRanges(t *testing.T) {
	books := []entity.Book{
		{ID: 1, Title: "Five", Chapters: ip(5)},
		{ID: 2, Title: "Fifteen", Chapters: ip(15)},
		{ID: 3, Title: "Sixty", Chapters: ip(60)},
		{ID: 4, Title: "OneFifty", Chapters: ip(150)},
	}

	tests := []struct {
		name   string
		ranges []string
		want   []string
	}{
		{name: "10-50", ranges: []string{Range10To50}, want: []string{"Fifteen"}},
		{name: "0-10 and 100+", ranges: []string{RangeUpTo10, RangeMoreThan100}, want: []string{"Five", "OneFifty"}},
		{name: "no selection", ranges: nil, want: []string{"Fifteen", "Five", "OneFifty", "Sixty"}},
		{name: "50-100", ranges: []string{Range50To100}, want: []string{"Sixty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilterSet()
			f.Chapters = tt.ranges
			assert.ElementsMatch(t, tt.want, titles(Filter(books, f)))
		})
	}
}

func TestInRange_Boundaries(t *testing.T) {
	assert.True(t, InRange(10, RangeUpTo10))
	assert.False(t, InRange(10, Range10To50))
	assert.True(t, InRange(50, Range10To50))
	assert.True(t, InRange(100, Range50To100))
	assert.False(t, InRange(100, RangeMoreThan100))
	assert.True(t, InRange(3, "unknown"))
}

func TestFilter_BookWithoutChaptersPassesEveryRange(t *testing.T) {
	books := []entity.Book{{ID: 1, Title: "Untracked"}, {ID: 2, Title: "Long", Chapters: ip(200)}}
	f := DefaultFilterSet()
	f.Chapters = []string{RangeUpTo10}

	assert.Equal(t, []string{"Untracked"}, titles(Filter(books, f)))
}

func TestFilter_GenresAreORed(t *testing.T) {
	books := []entity.Book{
		{ID: 1, Title: "A", Genres: []string{"Fiction"}},
		{ID: 2, Title: "B", Genres: []string{"Mystery"}},
		{ID: 3, Title: "C", Genres: []string{"History"}},
		{ID: 4, Title: "D"},
	}
	f := DefaultFilterSet()
	f.Genres = []string{"Fiction", "Mystery"}

	assert.Equal(t, []string{"A", "B"}, titles(Filter(books, f)))
}

func TestSort(t *testing.T) {
	books := []entity.Book{
		{ID: 1, Title: "Mockingbird", Year: ip(1960), AverageRating: fp(4.8)},
		{ID: 2, Title: "ébauche", AverageRating: fp(3.1)},
		{ID: 3, Title: "Gatsby", Year: ip(1925)},
	}

	tests := []struct {
		key  SortKey
		want []int64
	}{
		{key: SortYearAsc, want: []int64{2, 3, 1}},
		{key: SortYearDesc, want: []int64{1, 3, 2}},
		{key: SortRatingDesc, want: []int64{1, 2, 3}},
		{key: SortTitleAsc, want: []int64{2, 3, 1}},
		{key: SortTitleDesc, want: []int64{1, 3, 2}},
		{key: "bogus", want: []int64{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			in := append([]entity.Book{}, books...)
			Sort(in, tt.key)
			got := make([]int64, 0, len(in))
			for _, b := range in {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func fp(v float64) *float64 { return &v }

func TestFilters_ToggleIsInvolution(t *testing.T) {
	f := NewFilters()
	f.ToggleTempGenre("Fantasy")
	before := append([]string{}, f.Temp.Genres...)

	f.ToggleTempGenre("Science")
	f.ToggleTempGenre("Science")

	assert.ElementsMatch(t, before, f.Temp.Genres)
}

func TestFilters_TempEditsDoNotLeakIntoActive(t *testing.T) {
	f := NewFilters()
	f.ToggleTempGenre("Fiction")
	f.ToggleTempChapterRange(Range10To50)
	f.SetTempSort(SortYearDesc)
	assert.False(t, f.HasActiveFilters(), "temp edits must not apply")

	f.Apply()
	require.True(t, f.HasActiveFilters())

	f.ToggleTempGenre("Mystery")
	f.ToggleTempGenre("Fiction")
	assert.Equal(t, []string{"Fiction"}, f.Active.Genres)
	assert.Equal(t, []string{
		"Genres: Fiction",
		"Chapters: 10 to 50 chapters",
		"Sort: Year Newest",
	}, f.Summary())
}

func TestFilters_ApplyThenClearEqualsNeverFiltered(t *testing.T) {
	books := []entity.Book{
		{ID: 1, Title: "B", Genres: []string{"Fiction"}, Chapters: ip(5)},
		{ID: 2, Title: "A", Genres: []string{"History"}, Chapters: ip(70)},
	}
	untouched := NewFilters()
	baseline := Filter(books, untouched.Active)

	f := NewFilters()
	f.ToggleTempGenre("History")
	f.SetTempSort(SortRatingDesc)
	f.Apply()
	f.Clear()

	assert.Equal(t, baseline, Filter(books, f.Active))
	assert.Equal(t, untouched.Temp, f.Temp)
	assert.False(t, f.HasActiveFilters())
}

func TestFilters_TogglePanel(t *testing.T) {
	f := NewFilters()
	f.TogglePanel(PanelSort)
	assert.True(t, f.Panels[PanelSort])
	assert.False(t, f.Panels[PanelGenre])
	f.TogglePanel(PanelSort)
	assert.False(t, f.Panels[PanelSort])
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Slice(items, 1, 2))
	assert.Equal(t, []int{5}, Slice(items, 2, 2))
	assert.Empty(t, Slice(items, 5, 2))
	assert.Empty(t, Slice(items, -1, 2))
	assert.Equal(t, 3, TotalPages(5, 2))
	assert.Equal(t, 0, TotalPages(0, 20))
}

func TestPageNumbers(t *testing.T) {
	labels := func(links []PageLink) []string {
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, l.Label)
		}
		return out
	}

	assert.Nil(t, PageNumbers(0, 1))
	assert.Equal(t, []string{"1", "2"}, labels(PageNumbers(0, 2)))
	assert.Equal(t, []string{"1", "2", "...", "10"}, labels(PageNumbers(0, 10)))
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, labels(PageNumbers(4, 10)))
	assert.Equal(t, []string{"1", "...", "9", "10"}, labels(PageNumbers(9, 10)))

	links := PageNumbers(4, 10)
	assert.True(t, links[3].Current)
}

func TestNewPager(t *testing.T) {
	assert.Nil(t, NewPager(PageState{TotalPages: 1}))
	assert.Nil(t, NewPager(PageState{TotalPages: 5, Loading: true}))

	p := NewPager(PageState{Index: 0, TotalPages: 3})
	require.NotNil(t, p)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)
}

func TestSequencer_LastStartedWins(t *testing.T) {
	var seq Sequencer
	ctx := context.Background()

	firstCtx, first := seq.Begin(ctx, time.Second)
	_, second := seq.Begin(ctx, time.Second)
	defer second.Done()

	assert.False(t, first.Current())
	assert.True(t, second.Current())
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled, "stale fetch is cancelled")
	first.Done()
	assert.True(t, second.Current())
	assert.Equal(t, uint64(2), seq.Generation())
}

func TestSequencer_Timeout(t *testing.T) {
	var seq Sequencer
	ctx, ticket := seq.Begin(context.Background(), 10*time.Millisecond)
	defer ticket.Done()

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

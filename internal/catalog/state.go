package catalog

import (
	"slices"
	"strings"
)

// Panel names a collapsible section of the filter panel.
type Panel string

const (
	PanelGenre    Panel = "genre"
	PanelChapters Panel = "chapters"
	PanelSort     Panel = "sort"
)

// Filters is the temp/active filter state of one catalog page. Temp is edited
// freely; Active only changes through Apply and Clear.
type Filters struct {
	Temp   FilterSet
	Active FilterSet
	Panels map[Panel]bool
}

func NewFilters() Filters {
	f := Filters{
		Active: DefaultFilterSet(),
		Panels: map[Panel]bool{PanelGenre: false, PanelChapters: false, PanelSort: false},
	}
	f.ResetTemp()
	return f
}

func (f *Filters) ToggleTempGenre(genre string) {
	f.Temp.Genres = toggle(f.Temp.Genres, genre)
}

func (f *Filters) ToggleTempChapterRange(token string) {
	f.Temp.Chapters = toggle(f.Temp.Chapters, token)
}

func (f *Filters) SetTempSort(key SortKey) {
	f.Temp.Sort = key
}

func (f *Filters) TogglePanel(p Panel) {
	if f.Panels == nil {
		f.Panels = map[Panel]bool{}
	}
	f.Panels[p] = !f.Panels[p]
}

// Apply snapshots temp into active.
func (f *Filters) Apply() {
	f.Active = f.Temp.Clone()
}

// Clear resets temp and active together.
func (f *Filters) Clear() {
	f.Active = DefaultFilterSet()
	f.Temp = DefaultFilterSet()
}

// ResetTemp discards unapplied edits.
func (f *Filters) ResetTemp() {
	f.Temp = f.Active.Clone()
}

func (f Filters) HasActiveFilters() bool {
	return !f.Active.IsDefault()
}

// Summary describes the active filters, one line per dimension.
func (f Filters) Summary() []string {
	var lines []string
	if len(f.Active.Genres) > 0 {
		lines = append(lines, "Genres: "+strings.Join(f.Active.Genres, ", "))
	}
	if len(f.Active.Chapters) > 0 {
		labels := make([]string, 0, len(f.Active.Chapters))
		for _, c := range f.Active.Chapters {
			labels = append(labels, label(ChapterRanges, c))
		}
		lines = append(lines, "Chapters: "+strings.Join(labels, ", "))
	}
	if f.Active.Sort != SortTitleAsc {
		lines = append(lines, "Sort: "+label(SortOptions, string(f.Active.Sort)))
	}
	return lines
}

func toggle(values []string, v string) []string {
	if i := slices.Index(values, v); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), v)
}

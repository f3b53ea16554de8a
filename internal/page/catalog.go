package page

import (
	"context"
	"errors"
	"html/template"
	"log"
	"strings"
	"sync"

	"booktracker/internal/action"
	"booktracker/internal/catalog"
	"booktracker/internal/entity"
	"booktracker/internal/fallback"
	"booktracker/internal/platform/bookapi"
)

var ErrUnknownAction = errors.New("page: unknown action")

const (
	FragmentFilters = "filters"
	FragmentResults = "results"
)

// Catalog lists books page by page with genre, chapter and sort filters.
// Filters apply to the fetched page only.
type Catalog struct {
	deps Deps
	seq  catalog.Sequencer

	mu      sync.Mutex
	filters catalog.Filters
	pages   catalog.PageState
	books   []entity.Book
	// loaded is the key of the published results; stale forces a refetch.
	loaded loadKey
	stale  bool
}

// loadKey identifies the inputs a results page was fetched and filtered with.
type loadKey struct {
	index    int
	genres   string
	chapters string
	sort     catalog.SortKey
}

func keyOf(index int, f catalog.FilterSet) loadKey {
	return loadKey{
		index:    index,
		genres:   strings.Join(f.Genres, "\x00"),
		chapters: strings.Join(f.Chapters, "\x00"),
		sort:     f.Sort,
	}
}

func NewCatalog(d Deps) *Catalog {
	return &Catalog{
		deps:    d,
		filters: catalog.NewFilters(),
		pages:   catalog.NewPageState(catalog.DefaultPageSize),
		stale:   true,
	}
}

type panels struct {
	Genre    bool
	Chapters bool
	Sort     bool
}

type catalogData struct {
	Filters       catalog.Filters
	Open          panels
	TempSort      string
	Genres        []string
	ChapterRanges []catalog.Option
	SortOptions   []catalog.Option
	Summary       []string
	HasActive     bool
	Books         []entity.Book
	Loading       bool
	Pager         *catalog.Pager
}

func (c *Catalog) Render(ctx context.Context) (Output, error) {
	if err := c.load(ctx); err != nil {
		return Output{}, err
	}
	return page("Catalog", "catalog", c.snapshot())
}

func (c *Catalog) RenderFragment(ctx context.Context, name string) (template.HTML, error) {
	switch name {
	case FragmentFilters:
		return execute("catalog_filters", c.snapshot())
	case FragmentResults:
		if err := c.load(ctx); err != nil {
			return "", err
		}
		return execute("catalog_results", c.snapshot())
	default:
		return "", ErrUnknownFragment
	}
}

// Handle applies one filter or pagination transition. Fetching happens on
// the following render of the results region.
func (c *Catalog) Handle(_ context.Context, req action.Request) (action.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch req.Name {
	case "toggle_genre":
		c.filters.ToggleTempGenre(req.Target)
		return action.Regions(FragmentFilters), nil
	case "toggle_chapters":
		c.filters.ToggleTempChapterRange(req.Target)
		return action.Regions(FragmentFilters), nil
	case "set_sort":
		key := req.Target
		if key == "" {
			key = req.Value("sort")
		}
		c.filters.SetTempSort(catalog.SortKey(key))
		return action.Regions(FragmentFilters), nil
	case "toggle_panel":
		c.filters.TogglePanel(catalog.Panel(req.Target))
		return action.Regions(FragmentFilters), nil
	case "apply":
		c.filters.Apply()
		c.pages.Index = 0
		c.stale = true
		return action.Regions(FragmentFilters, FragmentResults), nil
	case "clear":
		c.filters.Clear()
		c.pages.Index = 0
		c.stale = true
		return action.Regions(FragmentFilters, FragmentResults), nil
	case "page":
		n, ok := req.TargetInt()
		if !ok {
			return action.Fail("Invalid page"), nil
		}
		c.pages.Index = n
		c.stale = true
		return action.Regions(FragmentResults), nil
	default:
		return action.Result{}, ErrUnknownAction
	}
}

// load fetches the current page unless the published results already match
// it. Only the most recently started load publishes its result.
func (c *Catalog) load(ctx context.Context) error {
	c.mu.Lock()
	index, size := c.pages.Index, c.pages.Size
	active := c.filters.Active.Clone()
	key := keyOf(index, active)
	if !c.stale && c.loaded == key {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	fetchCtx, ticket := c.seq.Begin(ctx, c.deps.timeout())
	defer ticket.Done()

	c.mu.Lock()
	c.pages.Loading = true
	c.mu.Unlock()

	var (
		books []entity.Book
		total int
	)
	res, err := c.deps.API.GetBooks(fetchCtx, index, size)
	switch {
	case err == nil:
		books = catalog.Filter(res.Content, active)
		total = max(res.TotalPages, 1)
	case errors.Is(err, context.Canceled):
		if ticket.Current() {
			c.mu.Lock()
			c.pages.Loading = false
			c.mu.Unlock()
			return err
		}
		log.Printf("page=catalog stale=true generation=%d", ticket.Generation())
		return nil
	case errors.Is(err, bookapi.ErrNotFound):
		books, total = nil, 1
	default:
		log.Printf("page=catalog fallback=true err=%v", err)
		all := catalog.Filter(fallback.Books(), active)
		books = catalog.Slice(all, index, size)
		total = catalog.TotalPages(len(all), size)
	}

	if !ticket.Current() {
		log.Printf("page=catalog stale=true generation=%d", ticket.Generation())
		return nil
	}
	c.mu.Lock()
	c.books = books
	c.pages.TotalPages = total
	c.pages.Loading = false
	c.loaded = key
	c.stale = false
	c.mu.Unlock()
	return nil
}

func (c *Catalog) snapshot() catalogData {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := catalog.Filters{
		Temp:   c.filters.Temp.Clone(),
		Active: c.filters.Active.Clone(),
		Panels: make(map[catalog.Panel]bool, len(c.filters.Panels)),
	}
	for k, v := range c.filters.Panels {
		f.Panels[k] = v
	}
	return catalogData{
		Filters:       f,
		Open:          panels{Genre: f.Panels[catalog.PanelGenre], Chapters: f.Panels[catalog.PanelChapters], Sort: f.Panels[catalog.PanelSort]},
		TempSort:      string(f.Temp.Sort),
		Genres:        catalog.Genres,
		ChapterRanges: catalog.ChapterRanges,
		SortOptions:   catalog.SortOptions,
		Summary:       f.Summary(),
		HasActive:     f.HasActiveFilters(),
		Books:         append([]entity.Book(nil), c.books...),
		Loading:       c.pages.Loading,
		Pager:         catalog.NewPager(c.pages),
	}
}

// State returns copies of the filter and paging state.
func (c *Catalog) State() (catalog.Filters, catalog.PageState) {
	d := c.snapshot()
	c.mu.Lock()
	defer c.mu.Unlock()
	return d.Filters, c.pages
}

package page

import (
	"context"
	"errors"
	"html/template"
	"log"
	"sync"

	"booktracker/internal/action"
	"booktracker/internal/catalog"
	"booktracker/internal/entity"
	"booktracker/internal/fallback"
	"booktracker/internal/platform/bookapi"
)

type SearchMode string

const (
	SearchBooks   SearchMode = "books"
	SearchAuthors SearchMode = "authors"
)

const (
	allBooksLimit   = 200
	allAuthorsLimit = 100
)

// Search looks up books or authors by text. Results are paged by the
// server; with no query it lists everything in the current mode.
type Search struct {
	deps Deps
	seq  catalog.Sequencer

	mu            sync.Mutex
	mode          SearchMode
	query         string
	hasSearched   bool
	pending       bool
	pages         catalog.PageState
	books         []entity.Book
	authors       []entity.Author
	totalElements int
}

func NewSearch(d Deps) *Search {
	return &Search{
		deps:  d,
		mode:  SearchBooks,
		pages: catalog.NewPageState(catalog.DefaultPageSize),
	}
}

type searchData struct {
	Mode          SearchMode
	Query         string
	HasSearched   bool
	Loading       bool
	Books         []entity.Book
	Authors       []entity.Author
	TotalElements int
	Pager         *catalog.Pager
	Placeholder   string
}

func (s *Search) Render(ctx context.Context) (Output, error) {
	if err := s.refresh(ctx); err != nil {
		return Output{}, err
	}
	return page("Search", "search", s.snapshot())
}

func (s *Search) RenderFragment(ctx context.Context, name string) (template.HTML, error) {
	if name != FragmentResults {
		return "", ErrUnknownFragment
	}
	if err := s.refresh(ctx); err != nil {
		return "", err
	}
	return execute("search_results", s.snapshot())
}

func (s *Search) Handle(ctx context.Context, req action.Request) (action.Result, error) {
	switch req.Name {
	case "set_type":
		s.setType(SearchMode(req.Target))
		return action.Result{}, nil
	case "search":
		s.mu.Lock()
		q := req.TrimmedValue("q")
		if q != s.query {
			s.pages.Index = 0
		}
		s.query = q
		s.hasSearched = true
		s.pending = true
		s.mu.Unlock()
		return action.Regions(FragmentResults), nil
	case "clear":
		s.mu.Lock()
		s.resetLocked()
		s.pending = s.mode == SearchBooks
		s.mu.Unlock()
		return action.Result{}, nil
	case "page":
		n, ok := req.TargetInt()
		if !ok {
			return action.Fail("Invalid page"), nil
		}
		s.mu.Lock()
		s.pages.Index = n
		s.hasSearched = true
		s.pending = true
		s.mu.Unlock()
		return action.Regions(FragmentResults), nil
	case "book_menu":
		id, ok := req.TargetID()
		if !ok {
			return action.Result{}, ErrUnknownAction
		}
		return bookMenu(s.deps.loggedIn(), id), nil
	case "author_menu":
		id, ok := req.TargetID()
		if !ok {
			return action.Result{}, ErrUnknownAction
		}
		return authorMenu(s.deps.loggedIn(), id), nil
	case "favorite_author", "follow_author":
		if !s.deps.loggedIn() {
			return signInFirst(), nil
		}
		if req.Name == "follow_author" {
			return action.Success("Now following author!"), nil
		}
		return action.Success("Author added to favorites!"), nil
	}

	id, ok := req.TargetID()
	if !ok {
		return action.Result{}, ErrUnknownAction
	}
	if res, handled := bookAction(ctx, s.deps, req, id); handled {
		return res, nil
	}
	return action.Result{}, ErrUnknownAction
}

// setType switches between books and authors and forgets the previous
// search. Selecting the current mode does nothing.
func (s *Search) setType(mode SearchMode) {
	if mode != SearchBooks && mode != SearchAuthors {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == mode {
		return
	}
	s.mode = mode
	s.resetLocked()
	s.pending = mode == SearchBooks
}

func (s *Search) resetLocked() {
	s.query = ""
	s.hasSearched = false
	s.pages.Index = 0
	s.pages.TotalPages = 0
	s.books = nil
	s.authors = nil
	s.totalElements = 0
}

func (s *Search) refresh(ctx context.Context) error {
	s.mu.Lock()
	need := s.pending || (s.mode == SearchBooks && !s.hasSearched && len(s.books) == 0)
	s.mu.Unlock()
	if !need {
		return nil
	}
	return s.run(ctx)
}

type searchResult struct {
	books      []entity.Book
	authors    []entity.Author
	totalPages int
	total      int
}

func (s *Search) run(ctx context.Context) error {
	fetchCtx, ticket := s.seq.Begin(ctx, s.deps.timeout())
	defer ticket.Done()

	s.mu.Lock()
	s.pages.Loading = true
	s.pending = false
	mode, query, index, size := s.mode, s.query, s.pages.Index, s.pages.Size
	s.mu.Unlock()

	var (
		r   searchResult
		err error
	)
	switch {
	case query == "" && mode == SearchBooks:
		r, err = s.listBooks(fetchCtx)
	case query == "":
		r, err = s.listAuthors(fetchCtx)
	case mode == SearchBooks:
		r, err = s.searchBooks(fetchCtx, query, index, size)
	default:
		r, err = s.searchAuthors(fetchCtx, query, index, size)
	}

	if err != nil && ticket.Current() {
		s.mu.Lock()
		s.pages.Loading = false
		s.mu.Unlock()
		return err
	}
	if !ticket.Current() {
		log.Printf("page=search stale=true generation=%d", ticket.Generation())
		return nil
	}

	s.mu.Lock()
	s.books = r.books
	s.authors = r.authors
	s.pages.TotalPages = r.totalPages
	s.totalElements = r.total
	s.pages.Loading = false
	s.mu.Unlock()
	return nil
}

func (s *Search) listBooks(ctx context.Context) (searchResult, error) {
	res, err := s.deps.API.GetBooks(ctx, 0, allBooksLimit)
	books := res.Content
	if err != nil {
		if ctx.Err() == context.Canceled {
			return searchResult{}, err
		}
		if !errors.Is(err, bookapi.ErrNotFound) {
			log.Printf("page=search fallback=true err=%v", err)
			books = fallback.Books()
		}
	}
	return searchResult{books: books, total: len(books)}, nil
}

func (s *Search) listAuthors(ctx context.Context) (searchResult, error) {
	res, err := s.deps.API.GetAuthors(ctx, 0, allAuthorsLimit)
	authors := res.Content
	if err != nil {
		if ctx.Err() == context.Canceled {
			return searchResult{}, err
		}
		if !errors.Is(err, bookapi.ErrNotFound) {
			log.Printf("page=search fallback=true err=%v", err)
			authors = fallback.Authors()
		}
	}
	return searchResult{authors: authors, total: len(authors)}, nil
}

func (s *Search) searchBooks(ctx context.Context, query string, index, size int) (searchResult, error) {
	res, err := s.deps.API.SearchBooks(ctx, query, index, size)
	if err == nil {
		return searchResult{books: res.Content, totalPages: max(res.TotalPages, 1), total: res.TotalElements}, nil
	}
	if ctx.Err() == context.Canceled {
		return searchResult{}, err
	}
	if errors.Is(err, bookapi.ErrNotFound) {
		return searchResult{totalPages: 1}, nil
	}
	log.Printf("page=search fallback=true query=%q err=%v", query, err)
	books := fallback.SearchBooks(query)
	return searchResult{books: books, totalPages: 1, total: len(books)}, nil
}

func (s *Search) searchAuthors(ctx context.Context, query string, index, size int) (searchResult, error) {
	res, err := s.deps.API.SearchAuthors(ctx, query, index, size)
	if err == nil {
		return searchResult{authors: res.Content, totalPages: max(res.TotalPages, 1), total: res.TotalElements}, nil
	}
	if ctx.Err() == context.Canceled {
		return searchResult{}, err
	}
	if errors.Is(err, bookapi.ErrNotFound) {
		return searchResult{totalPages: 1}, nil
	}
	log.Printf("page=search fallback=true query=%q err=%v", query, err)
	authors := fallback.SearchAuthors(query)
	return searchResult{authors: authors, totalPages: 1, total: len(authors)}, nil
}

func (s *Search) snapshot() searchData {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := searchData{
		Mode:          s.mode,
		Query:         s.query,
		HasSearched:   s.hasSearched,
		Loading:       s.pages.Loading,
		Books:         append([]entity.Book(nil), s.books...),
		Authors:       append([]entity.Author(nil), s.authors...),
		TotalElements: s.totalElements,
		Placeholder:   "Search books by title...",
	}
	if s.mode == SearchAuthors {
		d.Placeholder = "Search authors by name..."
	}
	if s.query != "" {
		d.Pager = catalog.NewPager(s.pages)
	}
	return d
}

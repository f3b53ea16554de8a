package page

import (
	"context"
	"errors"
	"log"
	"sort"

	"booktracker/internal/entity"
	"booktracker/internal/fallback"

	"golang.org/x/sync/errgroup"
)

const (
	mainLatestFetched = 10
	mainLatestShown   = 5
	mainReviewed      = 3
	mainNewShown      = 3
)

// Main is the landing page: latest books, their newest reviews and recent
// releases.
type Main struct {
	deps Deps
}

func NewMain(d Deps) *Main { return &Main{deps: d} }

type mainData struct {
	Latest      []entity.Book
	Reviews     []entity.Review
	NewReleases []entity.Book
}

func (m *Main) Render(ctx context.Context) (Output, error) {
	ctx, cancel := m.deps.fetchContext(ctx)
	defer cancel()

	res, err := m.deps.API.GetBooks(ctx, 0, mainLatestFetched)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Output{}, err
		}
		log.Printf("page=main fallback=true err=%v", err)
		books := fallback.Books()
		return page("BookTracker", "main", mainData{
			Latest:      head(books, mainLatestShown),
			Reviews:     fallback.Reviews(),
			NewReleases: head(books, mainNewShown),
		})
	}

	books := res.Content
	return page("BookTracker", "main", mainData{
		Latest:      head(books, mainLatestShown),
		Reviews:     m.latestReviews(ctx, head(books, mainReviewed)),
		NewReleases: head(m.newReleases(books), mainNewShown),
	})
}

// latestReviews fetches the newest review of each book concurrently. A book
// whose reviews fail to load is skipped and does not stop the others.
func (m *Main) latestReviews(ctx context.Context, books []entity.Book) []entity.Review {
	found := make([]*entity.Review, len(books))
	var g errgroup.Group
	g.SetLimit(mainReviewed)
	for i, b := range books {
		g.Go(func() error {
			res, err := m.deps.API.GetBookReviews(ctx, b.ID, 0, 1)
			if err != nil {
				log.Printf("page=main book_id=%d reviews err=%v", b.ID, err)
				return nil
			}
			if len(res.Content) == 0 {
				return nil
			}
			r := res.Content[0]
			r.BookID = b.ID
			r.BookTitle = b.Title
			found[i] = &r
			return nil
		})
	}
	_ = g.Wait()

	var out []entity.Review
	for _, r := range found {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// newReleases keeps books from the last two years, newest first.
func (m *Main) newReleases(books []entity.Book) []entity.Book {
	cutoff := m.deps.now().Year() - 2
	var out []entity.Book
	for _, b := range books {
		if b.Year != nil && *b.Year >= cutoff {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].YearOrZero() > out[j].YearOrZero() })
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

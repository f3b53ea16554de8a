package page

import (
	"context"
	"log"

	"booktracker/internal/entity"
)

const homeGenres = 5

// Home shows featured books and catalog stats. It keeps no state.
type Home struct {
	deps Deps
}

func NewHome(d Deps) *Home { return &Home{deps: d} }

type homeData struct {
	Books   []entity.Book
	Total   int
	Authors int
	Genres  int
	Error   string
}

func (h *Home) Render(ctx context.Context) (Output, error) {
	ctx, cancel := h.deps.fetchContext(ctx)
	defer cancel()

	res, err := h.deps.API.GetBooks(ctx, 0, 8)
	if err != nil {
		log.Printf("page=home err=%v", err)
		return page("BookTracker", "home", homeData{Error: err.Error()})
	}
	return page("BookTracker", "home", homeData{
		Books:   res.Content,
		Total:   res.TotalElements,
		Authors: distinctAuthors(res.Content),
		Genres:  homeGenres,
	})
}

func distinctAuthors(books []entity.Book) int {
	seen := make(map[entity.AuthorRef]struct{})
	for _, b := range books {
		for _, a := range b.Authors {
			if a.ID != 0 {
				a.Name = ""
			}
			seen[a] = struct{}{}
		}
	}
	return len(seen)
}

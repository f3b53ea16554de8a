package page

import (
	"context"
	"errors"
	"log"

	"booktracker/internal/entity"
	"booktracker/internal/fallback"
	"booktracker/internal/platform/bookapi"
)

// Author shows one author and the books listing them. A new instance is
// built for every visit.
type Author struct {
	deps Deps
	id   int64
}

func NewAuthor(d Deps, id int64) *Author { return &Author{deps: d, id: id} }

type authorData struct {
	Author   entity.Author
	Books    []entity.Book
	NotFound bool
}

func (a *Author) Render(ctx context.Context) (Output, error) {
	ctx, cancel := a.deps.fetchContext(ctx)
	defer cancel()

	author, err := a.deps.API.GetAuthor(ctx, a.id)
	switch {
	case errors.Is(err, bookapi.ErrNotFound):
		return notFoundOutput("author", "Author not found")
	case errors.Is(err, context.Canceled):
		return Output{}, err
	case err != nil:
		log.Printf("page=author id=%d fallback=true err=%v", a.id, err)
		return page("Sample Author", "author", authorData{Author: fallback.Author(a.id)})
	}

	var books []entity.Book
	res, err := a.deps.API.GetBooks(ctx, 0, allBooksLimit)
	if err != nil {
		log.Printf("page=author id=%d books err=%v", a.id, err)
	}
	for _, b := range res.Content {
		if b.HasAuthor(a.id) {
			books = append(books, b)
		}
	}
	return page(author.Name, "author", authorData{Author: author, Books: books})
}

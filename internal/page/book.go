package page

import (
	"context"
	"errors"
	"log"
	"strconv"

	"booktracker/internal/action"
	"booktracker/internal/entity"
	"booktracker/internal/fallback"
	"booktracker/internal/platform/bookapi"
)

// Book shows one book with its reviews and the collection actions.
type Book struct {
	deps Deps
	id   int64
}

func NewBook(d Deps, id int64) *Book { return &Book{deps: d, id: id} }

type bookData struct {
	Book     entity.Book
	Reviews  []entity.Review
	LoggedIn bool
}

func (b *Book) Render(ctx context.Context) (Output, error) {
	ctx, cancel := b.deps.fetchContext(ctx)
	defer cancel()

	book, err := b.deps.API.GetBook(ctx, b.id)
	switch {
	case errors.Is(err, bookapi.ErrNotFound):
		return notFoundOutput("book", "Book not found")
	case errors.Is(err, context.Canceled):
		return Output{}, err
	case err != nil:
		log.Printf("page=book id=%d fallback=true err=%v", b.id, err)
		return page("Sample Book", "book", bookData{Book: fallback.Book(b.id), LoggedIn: b.deps.loggedIn()})
	}

	var reviews []entity.Review
	res, err := b.deps.API.GetBookReviews(ctx, b.id, 0, 20)
	if err != nil {
		log.Printf("page=book id=%d reviews err=%v", b.id, err)
	} else {
		reviews = res.Content
	}
	return page(book.Title, "book", bookData{Book: book, Reviews: reviews, LoggedIn: b.deps.loggedIn()})
}

func (b *Book) Handle(ctx context.Context, req action.Request) (action.Result, error) {
	if req.Name == "menu" {
		return bookPageMenu(b.id), nil
	}
	if res, ok := bookAction(ctx, b.deps, req, b.id); ok {
		return res, nil
	}
	return action.Result{}, ErrUnknownAction
}

func bookPageMenu(id int64) action.Result {
	target := strconv.FormatInt(id, 10)
	return action.Choose(action.Menu{Title: "Choose action for book", Choices: []action.Choice{
		{Label: "Add to favorites", Action: "add_favorite", Target: target},
		{Label: "Add to reading list", Action: "add_reading", Target: target},
		{Label: "Rate book", Action: "rate", Target: target},
		{Label: "Add review", Action: "review", Target: target},
		{Label: "Share book", Action: "share", Target: target},
	}})
}

//go:generate mockgen -source=ports.go -destination=mock_api.go -package=page

package page

import (
	"context"

	"booktracker/internal/entity"
	"booktracker/internal/platform/bookapi"
)

// API is the book API as seen by pages. *bookapi.Client implements it.
type API interface {
	Login(ctx context.Context, login, password string) (bookapi.AuthResponse, error)
	Register(ctx context.Context, req bookapi.RegisterRequest) (bookapi.AuthResponse, error)
	GetBooks(ctx context.Context, page, size int) (entity.Page[entity.Book], error)
	GetBook(ctx context.Context, id int64) (entity.Book, error)
	SearchBooks(ctx context.Context, query string, page, size int) (entity.Page[entity.Book], error)
	GetBookReviews(ctx context.Context, bookID int64, page, size int) (entity.Page[entity.Review], error)
	AddReview(ctx context.Context, bookID int64, req bookapi.ReviewRequest) (entity.Review, error)
	GetAuthors(ctx context.Context, page, size int) (entity.Page[entity.Author], error)
	GetAuthor(ctx context.Context, id int64) (entity.Author, error)
	SearchAuthors(ctx context.Context, query string, page, size int) (entity.Page[entity.Author], error)
	GetCollection(ctx context.Context, page, size int) (entity.Page[entity.CollectionEntry], error)
	AddToCollection(ctx context.Context, bookID int64, status, notes string, rating *int) (entity.CollectionEntry, error)
}

package profile

import (
	"context"
	"fmt"
	"log"
	"strings"

	"booktracker/internal/entity"
	"booktracker/internal/fallback"
	"booktracker/internal/session"
)

const (
	shownItems    = 20
	booksToLoad   = 200
	authorsToLoad = 100
)

// Source is the slice of the book API the profile page reads.
type Source interface {
	GetBooks(ctx context.Context, page, size int) (entity.Page[entity.Book], error)
	GetAuthors(ctx context.Context, page, size int) (entity.Page[entity.Author], error)
	GetCollection(ctx context.Context, page, size int) (entity.Page[entity.CollectionEntry], error)
}

type Items struct {
	Books    []entity.Book
	Authors  []entity.Author
	Fallback bool
}

type Service struct {
	source   Source
	sessions *session.Holder
}

func NewService(source Source, sessions *session.Holder) *Service {
	return &Service{source: source, sessions: sessions}
}

// Rename stores a new display name in the session profile.
func (s *Service) Rename(ctx context.Context, name string) (entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.User{}, ErrEmptyName
	}
	next, err := s.sessions.Update(ctx, func(cur session.Session) session.Session {
		return cur.WithDisplayName(name)
	})
	if err != nil {
		return entity.User{}, fmt.Errorf("rename: %w", err)
	}
	return next.User(), nil
}

// Load returns the first items of the requested view. Favorites and the
// reading list are narrowed to the user's collection when it can be read;
// any API failure falls back to the fixed dataset.
func (s *Service) Load(ctx context.Context, listID string, view View) (Items, error) {
	if view == ViewAuthors {
		res, err := s.source.GetAuthors(ctx, 0, authorsToLoad)
		if err != nil {
			if ctx.Err() != nil {
				return Items{}, ctx.Err()
			}
			log.Printf("page=profile fallback=true view=authors err=%v", err)
			return Items{Authors: fallback.Authors(), Fallback: true}, nil
		}
		return Items{Authors: head(res.Content, shownItems)}, nil
	}

	res, err := s.source.GetBooks(ctx, 0, booksToLoad)
	if err != nil {
		if ctx.Err() != nil {
			return Items{}, ctx.Err()
		}
		log.Printf("page=profile fallback=true view=books err=%v", err)
		return Items{Books: fallback.Books(), Fallback: true}, nil
	}
	books := res.Content
	if statuses := listStatuses(listID); statuses != nil {
		books = s.narrow(ctx, books, statuses)
	}
	return Items{Books: head(books, shownItems)}, nil
}

func (s *Service) narrow(ctx context.Context, books []entity.Book, statuses []string) []entity.Book {
	entries, err := s.source.GetCollection(ctx, 0, booksToLoad)
	if err != nil {
		log.Printf("page=profile collection unavailable err=%v", err)
		return books
	}
	wanted := make(map[int64]bool)
	for _, e := range entries.Content {
		for _, st := range statuses {
			if e.Status == st {
				wanted[e.BookID] = true
			}
		}
	}
	var out []entity.Book
	for _, b := range books {
		if wanted[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

func listStatuses(listID string) []string {
	switch listID {
	case ListFavorites:
		return []string{entity.StatusFavorite}
	case ListReading:
		return []string{entity.StatusWantToRead, entity.StatusReading}
	default:
		return nil
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

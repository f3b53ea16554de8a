package entity

import (
	"encoding/json"
	"time"
)

const DefaultCoverURL = "https://images.pexels.com/photos/1926988/pexels-photo-1926988.jpeg"

type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	ISBN          string      `json:"isbn,omitempty"`
	Authors       []AuthorRef `json:"authors,omitempty"`
	Year          *int        `json:"year,omitempty"`
	CoverURL      string      `json:"coverUrl,omitempty"`
	AverageRating *float64    `json:"averageRating,omitempty"`
	RatingsCount  int         `json:"ratingsCount,omitempty"`
	Description   string      `json:"description,omitempty"`
	Chapters      *int        `json:"chapters,omitempty"`
	Pages         int         `json:"pages,omitempty"`
	Genres        []string    `json:"genres,omitempty"`
}

// UnmarshalJSON accepts both "year" and the backend's "publicationYear".
func (b *Book) UnmarshalJSON(data []byte) error {
	type alias Book
	var raw struct {
		alias
		PublicationYear *int `json:"publicationYear"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Book(raw.alias)
	if b.Year == nil {
		b.Year = raw.PublicationYear
	}
	return nil
}

func (b Book) YearOrZero() int {
	if b.Year == nil {
		return 0
	}
	return *b.Year
}

func (b Book) RatingOrZero() float64 {
	if b.AverageRating == nil {
		return 0
	}
	return *b.AverageRating
}

func (b Book) Cover() string {
	if b.CoverURL == "" {
		return DefaultCoverURL
	}
	return b.CoverURL
}

func (b Book) HasAuthor(id int64) bool {
	for _, a := range b.Authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (b Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

type Author struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Biography   string `json:"biography,omitempty"`
	BirthYear   int    `json:"birthYear,omitempty"`
	DeathYear   int    `json:"deathYear,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	BooksCount  int    `json:"booksCount,omitempty"`
}

// UnmarshalJSON accepts the backend's "bio" as an alias of "biography".
func (a *Author) UnmarshalJSON(data []byte) error {
	type alias Author
	var raw struct {
		alias
		Bio string `json:"bio"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Author(raw.alias)
	if a.Biography == "" {
		a.Biography = raw.Bio
	}
	return nil
}

type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"bookId"`
	BookTitle string    `json:"bookTitle,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts "text" for the comment and the backend's zone-less timestamps.
func (r *Review) UnmarshalJSON(data []byte) error {
	type alias Review
	var raw struct {
		alias
		Text      string `json:"text"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Review(raw.alias)
	if r.Comment == "" {
		r.Comment = raw.Text
	}
	r.CreatedAt = parseTimestamp(raw.CreatedAt)
	return nil
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Page is the paged envelope returned by list and search endpoints.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

const (
	StatusFavorite   = "FAVORITE"
	StatusWantToRead = "WANT_TO_READ"
	StatusReading    = "READING"
	StatusRead       = "READ"
)

type CollectionEntry struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"bookId"`
	BookTitle string `json:"bookTitle,omitempty"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	Rating    *int   `json:"rating,omitempty"`
}

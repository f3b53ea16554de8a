// Package fallback holds the fixed dataset pages show when the book API is
// unreachable.
package fallback

import (
	"strings"
	"time"

	"booktracker/internal/entity"
)

const (
	defaultAuthorPhoto = "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// Books returns the fallback catalog.
func Books() []entity.Book {
	return []entity.Book{
		{
			ID:            1,
			Title:         "The Great Gatsby",
			Authors:       []entity.AuthorRef{{ID: 1, Name: "F. Scott Fitzgerald"}},
			Year:          intPtr(1925),
			CoverURL:      entity.DefaultCoverURL,
			AverageRating: floatPtr(4.5),
			Description:   "A classic novel of the Jazz Age, exploring themes of idealism, resistance to change, social upheaval, and excess.",
			Genres:        []string{"Fiction", "Classic"},
			Chapters:      intPtr(9),
		},
		{
			ID:            2,
			Title:         "To Kill a Mockingbird",
			Authors:       []entity.AuthorRef{{ID: 2, Name: "Harper Lee"}},
			Year:          intPtr(1960),
			CoverURL:      entity.DefaultCoverURL,
			AverageRating: floatPtr(4.8),
			Description:   "A gripping, heart-wrenching tale of racial injustice and childhood innocence in the American South.",
			Genres:        []string{"Fiction", "Classic"},
			Chapters:      intPtr(31),
		},
		{
			ID:            3,
			Title:         "1984",
			Authors:       []entity.AuthorRef{{ID: 3, Name: "George Orwell"}},
			Year:          intPtr(1949),
			CoverURL:      entity.DefaultCoverURL,
			AverageRating: floatPtr(4.7),
			Description:   "A dystopian social science fiction novel that examines totalitarianism, mass surveillance, and repressive regimentation.",
			Genres:        []string{"Science Fiction", "Dystopian"},
			Chapters:      intPtr(23),
		},
	}
}

func Authors() []entity.Author {
	return []entity.Author{
		{
			ID:         1,
			Name:       "F. Scott Fitzgerald",
			BooksCount: 5,
			Biography:  "American novelist and short story writer, famous for his depictions of the Jazz Age.",
		},
		{
			ID:         2,
			Name:       "Harper Lee",
			BooksCount: 2,
			Biography:  "American novelist best known for her 1960 novel To Kill a Mockingbird.",
		},
		{
			ID:         3,
			Name:       "George Orwell",
			BooksCount: 8,
			Biography:  "English novelist, essayist, journalist and critic. His work is characterised by lucid prose, social criticism, and opposition to totalitarianism.",
		},
	}
}

// Reviews are the two reviews shown on the main page when the API is down.
func Reviews() []entity.Review {
	now := time.Now()
	return []entity.Review{
		{
			ID:        1,
			BookID:    1,
			BookTitle: "The Great Gatsby",
			UserName:  "John Doe",
			Rating:    5,
			Comment:   "Amazing classic! The portrayal of the Jazz Age is incredible.",
			CreatedAt: now,
		},
		{
			ID:        2,
			BookID:    3,
			BookTitle: "1984",
			UserName:  "Jane Smith",
			Rating:    4,
			Comment:   "Thought-provoking dystopia that remains relevant today.",
			CreatedAt: now,
		},
	}
}

// Book is the placeholder shown on a book page when the API fails with
// anything other than 404.
func Book(id int64) entity.Book {
	return entity.Book{
		ID:            id,
		Title:         "Sample Book",
		Authors:       []entity.AuthorRef{{ID: 1, Name: "Sample Author"}},
		Year:          intPtr(2023),
		CoverURL:      entity.DefaultCoverURL,
		AverageRating: floatPtr(4.0),
		RatingsCount:  10,
		Pages:         300,
		Description:   "This is a sample book description.",
	}
}

func Author(id int64) entity.Author {
	return entity.Author{
		ID:          id,
		Name:        "Sample Author",
		BirthYear:   1950,
		Nationality: "American",
		Biography:   "This is a sample author biography.",
		PhotoURL:    defaultAuthorPhoto,
	}
}

// SearchBooks matches the query case-insensitively against titles and
// author names.
func SearchBooks(query string) []entity.Book {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []entity.Book
	for _, b := range Books() {
		if strings.Contains(strings.ToLower(b.Title), q) || authorMatches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

func SearchAuthors(query string) []entity.Author {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []entity.Author
	for _, a := range Authors() {
		if strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

func authorMatches(b entity.Book, q string) bool {
	for _, a := range b.Authors {
		if strings.Contains(strings.ToLower(a.Name), q) {
			return true
		}
	}
	return false
}

package page

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"booktracker/internal/action"
	"booktracker/internal/entity"
	"booktracker/internal/platform/bookapi"
)

const ratePrompt = "Rate this book (1-5):"

func signInFirst() action.Result {
	return action.RedirectTo("/auth").WithNotice(action.LevelInfo, "Please sign in to continue")
}

// bookAction runs the collection actions shared by the search and book
// pages. It reports false for any other action name.
func bookAction(ctx context.Context, d Deps, req action.Request, bookID int64) (action.Result, bool) {
	target := strconv.FormatInt(bookID, 10)

	switch req.Name {
	case "share":
		return action.Info("Book link: /book/" + target), true
	case "add_favorite", "add_reading", "rate", "review":
	default:
		return action.Result{}, false
	}
	if !d.loggedIn() {
		return signInFirst(), true
	}

	ctx, cancel := d.fetchContext(ctx)
	defer cancel()

	switch req.Name {
	case "add_favorite":
		if _, err := d.API.AddToCollection(ctx, bookID, entity.StatusFavorite, "", nil); err != nil {
			log.Printf("action=add_favorite book_id=%d err=%v", bookID, err)
			return action.Fail("Failed to add to favorites"), true
		}
		return action.Success("Added to favorites!"), true

	case "add_reading":
		if _, err := d.API.AddToCollection(ctx, bookID, entity.StatusWantToRead, "", nil); err != nil {
			log.Printf("action=add_reading book_id=%d err=%v", bookID, err)
			return action.Fail("Failed to add to reading list"), true
		}
		return action.Success("Added to reading list!"), true

	case "rate":
		if req.TrimmedValue("rating") == "" {
			return askRating("rate", target, nil), true
		}
		rating, valid := ratingValue(req)
		if !valid {
			return action.Fail("Rating must be a number from 1 to 5"), true
		}
		if _, err := d.API.AddToCollection(ctx, bookID, entity.StatusRead, "", &rating); err != nil {
			log.Printf("action=rate book_id=%d err=%v", bookID, err)
			return action.Fail("Failed to perform action"), true
		}
		return action.Success(fmt.Sprintf("Rated %d stars!", rating)), true

	default: // review
		comment := req.TrimmedValue("comment")
		if comment == "" {
			return action.Ask(action.Prompt{
				Title:  "Write your review:",
				Action: "review",
				Target: target,
				Field:  "comment",
				Kind:   "text",
			}), true
		}
		if req.TrimmedValue("rating") == "" {
			return askRating("review", target, url.Values{"comment": {comment}}), true
		}
		rating, valid := ratingValue(req)
		if !valid {
			return action.Fail("Rating must be a number from 1 to 5"), true
		}
		_, err := d.API.AddReview(ctx, bookID, bookapi.ReviewRequest{Rating: rating, Comment: comment})
		if err != nil {
			log.Printf("action=review book_id=%d err=%v", bookID, err)
			return action.Fail("Failed to submit review"), true
		}
		return action.Success("Review submitted!"), true
	}
}

func askRating(name, target string, carry url.Values) action.Result {
	return action.Ask(action.Prompt{
		Title:  ratePrompt,
		Action: name,
		Target: target,
		Field:  "rating",
		Kind:   "number",
		Min:    1,
		Max:    5,
		Carry:  carry,
	})
}

func ratingValue(req action.Request) (int, bool) {
	n, ok := req.Int("rating")
	return n, ok && n >= 1 && n <= 5
}

// bookMenu lists the actions offered for a book in result lists.
func bookMenu(loggedIn bool, bookID int64) action.Result {
	target := strconv.FormatInt(bookID, 10)
	var choices []action.Choice
	if loggedIn {
		choices = append(choices,
			action.Choice{Label: "Add to favorites", Action: "add_favorite", Target: target},
			action.Choice{Label: "Add to reading list", Action: "add_reading", Target: target},
			action.Choice{Label: "Rate book", Action: "rate", Target: target},
		)
	}
	choices = append(choices, action.Choice{Label: "View book details", Href: "/book/" + target})
	return action.Choose(action.Menu{Title: "Choose action for book", Choices: choices})
}

func authorMenu(loggedIn bool, authorID int64) action.Result {
	target := strconv.FormatInt(authorID, 10)
	var choices []action.Choice
	if loggedIn {
		choices = append(choices,
			action.Choice{Label: "Add to favorite authors", Action: "favorite_author", Target: target},
			action.Choice{Label: "Follow author", Action: "follow_author", Target: target},
		)
	}
	choices = append(choices, action.Choice{Label: "View author details", Href: "/author/" + target})
	return action.Choose(action.Menu{Title: "Choose action for author", Choices: choices})
}

package bookapi

import (
	"context"
	"net/http"
	"strconv"

	"booktracker/internal/entity"
)

// Collection endpoints are passed through unchanged; the UI only adds entries.

type CollectionUpdate struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

func (c *Client) GetCollection(ctx context.Context, page, size int) (entity.Page[entity.CollectionEntry], error) {
	var res entity.Page[entity.CollectionEntry]
	err := c.do(ctx, http.MethodGet, "/collections", pageQuery(page, size), nil, &res)
	return res, err
}

func (c *Client) AddToCollection(ctx context.Context, bookID int64, status, notes string, rating *int) (entity.CollectionEntry, error) {
	body := struct {
		BookID int64  `json:"bookId"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
		Rating *int   `json:"rating"`
	}{bookID, status, notes, rating}

	var res entity.CollectionEntry
	err := c.do(ctx, http.MethodPost, "/collections", nil, body, &res)
	return res, err
}

func (c *Client) UpdateCollectionEntry(ctx context.Context, entryID int64, update CollectionUpdate) (entity.CollectionEntry, error) {
	var res entity.CollectionEntry
	err := c.do(ctx, http.MethodPut, "/collections/"+strconv.FormatInt(entryID, 10), nil, update, &res)
	return res, err
}

func (c *Client) RemoveFromCollection(ctx context.Context, entryID int64) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+strconv.FormatInt(entryID, 10), nil, nil, nil)
}

package client

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Book mirrors the JSON schema of the remote API's Book resource.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PageCount   int    `json:"pageCount"`
	Excerpt     string `json:"excerpt"`
	PublishDate string `json:"publishDate"` // ISO 8601, e.g. "2023-01-01T00:00:00Z"
}

// BookParams is the request body for creating or updating a book. Unlike Book, the
// numeric fields are optional so that tests can send partial payloads and observe
// how the service treats them.
type BookParams struct {
	ID          ldvalue.OptionalInt `json:"id,omitempty"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	PageCount   ldvalue.OptionalInt `json:"pageCount,omitempty"`
	Excerpt     string              `json:"excerpt,omitempty"`
	PublishDate string              `json:"publishDate,omitempty"`
}

// ParamsForBook produces the request body that would round-trip to the given Book.
func ParamsForBook(b Book) BookParams {
	return BookParams{
		ID:          ldvalue.NewOptionalInt(b.ID),
		Title:       b.Title,
		Description: b.Description,
		PageCount:   ldvalue.NewOptionalInt(b.PageCount),
		Excerpt:     b.Excerpt,
		PublishDate: b.PublishDate,
	}
}

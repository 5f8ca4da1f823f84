package domain

import "time"

// Bookmark is a named marker at a page.
type Bookmark struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Page      int       `json:"page"`
	Title     string    `json:"title"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

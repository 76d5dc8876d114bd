package models

import "time"

// Post is an authored publication. Posts are stored most-recent-first.
// The Comments sub-collection is persisted but unused; it is reserved for
// per-post threads and always serializes as an empty array.
type Post struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Likes    int       `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Comment is a page-scoped, append-only remark. Comments are never edited
// or deleted once stored.
type Comment struct {
	ID   string    `json:"id"`
	User string    `json:"user"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
	Page string    `json:"page"`
}

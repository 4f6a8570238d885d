package model

import "time"

// Comment is feedback left on an item by a user who completed an
// approved booking of it. AuthorName is joined from the current user
// record at read time.
type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"-"`
	AuthorID   int64     `json:"-"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// MaxCommentLength bounds comment text, in runes.
const MaxCommentLength = 1024

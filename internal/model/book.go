package model

import "time"

// ChapterStatus tracks where a chapter is in the authoring flow
type ChapterStatus string

const (
	ChapterStatusOutline      ChapterStatus = "outline"      // Title/description only
	ChapterStatusInterviewing ChapterStatus = "interviewing" // Questions generated, being answered
	ChapterStatusDrafted      ChapterStatus = "drafted"      // AI draft produced
	ChapterStatusFinal        ChapterStatus = "final"
)

// Book is a persistent book owned by an author
type Book struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	AuthorID       string    `json:"authorId" bson:"authorId"`
	Title          string    `json:"title" bson:"title"`
	Genre          string    `json:"genre" bson:"genre"`
	TargetAudience string    `json:"targetAudience" bson:"targetAudience"`
	Description    string    `json:"description" bson:"description"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Chapter is a persistent chapter within a book
type Chapter struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	BookID      string        `json:"bookId" bson:"bookId"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Content     string        `json:"content" bson:"content"` // Draft text, empty until drafted
	Status      ChapterStatus `json:"status" bson:"status"`
	Order       int           `json:"order" bson:"order"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ChapterContext is the title/content/genre triple a question is scored
// against. Built per scoring call from persisted chapter and book data;
// never stored itself.
type ChapterContext struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Genre   string `json:"genre"`
}

package models

import "time"

type Comment struct {
	ID              int64     `json:"id"`
	Text            string    `json:"text"`
	AuthorID        int       `json:"author_id"`
	Author          string    `json:"author"`
	ArticleID       int64     `json:"article"`
	PublicationDate time.Time `json:"publication_date"`
}

type CreateCommentRequest struct {
	Text    string `json:"text"    example:"Отличная статья"`
	Article int64  `json:"article" example:"1"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text,omitempty"`
}

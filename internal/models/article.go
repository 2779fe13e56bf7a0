package models

import "time"

type Article struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Abstract        string    `json:"abstract"`
	PublicationDate time.Time `json:"publication_date"`
	Authors         []Author  `json:"authors"`
	Tags            []string  `json:"tags"`
}

// Author — сокращённое представление пользователя в составе статьи.
type Author struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// swagger:model CreateArticleRequest
type CreateArticleRequest struct {
	Title    string   `json:"title"    example:"Распределённые системы на практике"`
	Abstract string   `json:"abstract" example:"Краткая аннотация статьи"`
	Authors  []int    `json:"authors"  example:"1,2"`
	Tags     []string `json:"tags"     example:"go,backend"`
}

// UpdateArticleRequest — частичное обновление: nil-поля не трогаем.
type UpdateArticleRequest struct {
	Title    *string   `json:"title,omitempty"`
	Abstract *string   `json:"abstract,omitempty"`
	Authors  *[]int    `json:"authors,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

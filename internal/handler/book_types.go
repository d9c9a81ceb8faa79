package handler

import "github.com/snnyvrz/go-book-crud-gin/internal/model"

// BookRequest is the body accepted by the create and update endpoints. An id
// in the body is ignored; updates also ignore isbn.
type BookRequest struct {
	ISBN            string `json:"isbn" example:"978-0-13-468599-1"`
	Title           string `json:"title" example:"The Go Programming Language"`
	Author          string `json:"author" example:"Alan A. A. Donovan"`
	Publisher       string `json:"publisher" example:"Addison-Wesley"`
	PublicationYear int    `json:"publicationYear" example:"2015"`
	Genre           string `json:"genre" example:"Programming"`
	Language        string `json:"language" example:"English"`
	Description     string `json:"description"`
}

func (r BookRequest) toModel() *model.Book {
	return &model.Book{
		ISBN:            r.ISBN,
		Title:           r.Title,
		Author:          r.Author,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Genre:           r.Genre,
		Language:        r.Language,
		Description:     r.Description,
	}
}

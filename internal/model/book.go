package model

import "fmt"

// Book is the only persisted entity. ID is zero until the first insert.
type Book struct {
	ID              uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	ISBN            string `json:"isbn" gorm:"uniqueIndex"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublicationYear int    `json:"publicationYear"`
	Genre           string `json:"genre"`
	Language        string `json:"language"`
	Description     string `json:"description"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) String() string {
	return fmt.Sprintf(
		"Book(id=%d, isbn=%s, title=%s, author=%s, publisher=%s, publicationYear=%d, genre=%s, language=%s, description=%s)",
		b.ID,
		b.ISBN,
		b.Title,
		b.Author,
		b.Publisher,
		b.PublicationYear,
		b.Genre,
		b.Language,
		b.Description,
	)
}

// SampleBooks returns the fixed seed set. A new slice is built on every call.
func SampleBooks() []Book {
	return []Book{
		{
			ISBN:            "978-3-16-148410-0",
			Title:           "Effective Java",
			Author:          "Joshua Bloch",
			Publisher:       "Addison-Wesley",
			PublicationYear: 2018,
			Genre:           "Programming",
			Language:        "English",
			Description:     "A comprehensive guide to programming in Java.",
		},
		{
			ISBN:            "978-0-13-468609-7",
			Title:           "Clean Code",
			Author:          "Robert C. Martin",
			Publisher:       "Prentice Hall",
			PublicationYear: 2008,
			Genre:           "Programming",
			Language:        "English",
			Description:     "A handbook of agile software craftsmanship.",
		},
		{
			ISBN:            "978-0-201-53082-7",
			Title:           "Design Patterns: Elements of Reusable Object-Oriented Software",
			Author:          "Erich Gamma, Richard Helm, Ralph Johnson, John Vlissides",
			Publisher:       "Addison-Wesley",
			PublicationYear: 1994,
			Genre:           "Software Design",
			Language:        "English",
			Description:     "A classic book on software design patterns.",
		},
		{
			ISBN:            "978-1-4919-1882-6",
			Title:           "Learning Python",
			Author:          "Mark Lutz",
			Publisher:       "O'Reilly Media",
			PublicationYear: 2013,
			Genre:           "Programming",
			Language:        "English",
			Description:     "An in-depth introduction to the Python programming language.",
		},
	}
}

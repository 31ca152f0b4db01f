package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a catalogued book
type Book struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	ISBN            string    `json:"isbn" db:"isbn"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	Author          string `json:"author" validate:"required,max=100"`
	PublicationYear int    `json:"publication_year" validate:"required,gt=0"`
	ISBN            string `json:"isbn" validate:"required,max=20"`
}

// UpdateBookRequest carries corrective edits; nil fields are left untouched.
type UpdateBookRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=255"`
	Author          *string `json:"author" validate:"omitempty,max=100"`
	PublicationYear *int    `json:"publication_year" validate:"omitempty,gt=0"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=20"`
}

// BookFilter narrows book listings. Nil bounds contribute no constraint.
type BookFilter struct {
	PublishedAfter  *int
	PublishedBefore *int
}

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear int       `json:"publication_year"`
	ISBN            string    `json:"isbn"`
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/repository"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
)

// BookService handles catalog CRUD for books, with a best-effort read cache
// in front of point lookups.
type BookService struct {
	Books repository.BookRepository
	Cache *repository.BookCache

	Now func() time.Time
}

func NewBookService(books repository.BookRepository, cache *repository.BookCache) *BookService {
	return &BookService{
		Books: books,
		Cache: cache,
		Now:   time.Now,
	}
}

func (s *BookService) CreateBook(ctx context.Context, request *domain.CreateBookRequest) (uuid.UUID, error) {
	now := s.Now()

	book := &domain.Book{
		ID:              uuid.New(),
		Title:           request.Title,
		Author:          request.Author,
		PublicationYear: request.PublicationYear,
		ISBN:            request.ISBN,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Books.Create(ctx, book); err != nil {
		if errors.Is(err, customError.ErrDuplicateISBN) {
			return uuid.Nil, customError.WrapDuplicateISBN(request.ISBN)
		}
		return uuid.Nil, customError.WrapDatabaseError(err)
	}

	return book.ID, nil
}

func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*domain.BookResponse, error) {
	if book := s.Cache.Get(ctx, id); book != nil {
		return ProjectBook(book), nil
	}

	book, err := s.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBookNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.Cache.Set(ctx, book)

	return ProjectBook(book), nil
}

func (s *BookService) GetBooks(ctx context.Context, filter domain.BookFilter, page domain.PageRequest) (*domain.Page[*domain.BookResponse], error) {
	page = page.Normalize()

	books, total, err := s.Books.FindAll(ctx, filter, page)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	views := make([]*domain.BookResponse, 0, len(books))
	for _, book := range books {
		views = append(views, ProjectBook(book))
	}

	return domain.NewPage(views, page, total), nil
}

func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, request *domain.UpdateBookRequest) error {
	book, err := s.Books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapBookNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if request.Title != nil {
		book.Title = *request.Title
	}
	if request.Author != nil {
		book.Author = *request.Author
	}
	if request.PublicationYear != nil {
		book.PublicationYear = *request.PublicationYear
	}
	if request.ISBN != nil {
		book.ISBN = *request.ISBN
	}

	if err := s.Books.Update(ctx, book); err != nil {
		if errors.Is(err, customError.ErrDuplicateISBN) {
			return customError.WrapDuplicateISBN(book.ISBN)
		}
		if errors.Is(err, customError.ErrBookNotFound) {
			return customError.WrapBookNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	s.Cache.Invalidate(ctx, id)

	return nil
}

func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.Books.Delete(ctx, id); err != nil {
		if errors.Is(err, customError.ErrBookNotFound) {
			return customError.WrapBookNotFound(id.String())
		}
		return customError.WrapDatabaseError(err)
	}

	s.Cache.Invalidate(ctx, id)

	return nil
}

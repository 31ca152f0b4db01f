package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrBookNotFound            = errors.New("book not found")
	ErrPatronNotFound          = errors.New("patron not found")
	ErrRecordNotFound          = errors.New("borrowing record not found")
	ErrBookAlreadyBorrowed     = errors.New("book is already borrowed")
	ErrMaxBorrowedBooksReached = errors.New("maximum number of borrowed books reached")
	ErrOverdueBooksExist       = errors.New("patron has overdue books")
	ErrDuplicateISBN           = errors.New("a book with this ISBN already exists")
	ErrDuplicateEmail          = errors.New("a patron with this email already exists")
	ErrBorrowDateInFuture      = errors.New("borrow date cannot be in the future")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeBookNotFound        = "BOOK_NOT_FOUND"
	ErrCodePatronNotFound      = "PATRON_NOT_FOUND"
	ErrCodeRecordNotFound      = "BORROWING_RECORD_NOT_FOUND"
	ErrCodeBookAlreadyBorrowed = "BOOK_ALREADY_BORROWED"
	ErrCodeMaxBorrowedBooks    = "MAX_BORROWED_BOOKS_EXCEEDED"
	ErrCodeOverdueBooksExist   = "OVERDUE_BOOKS_EXIST"
	ErrCodeDuplicateISBN       = "DUPLICATE_ISBN"
	ErrCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	ErrCodeInvalidBorrowDate   = "INVALID_BORROW_DATE"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeCacheError          = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapBookNotFound(bookID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookNotFound,
		fmt.Sprintf("Book with ID %s not found", bookID),
		ErrBookNotFound,
	)
}

func WrapPatronNotFound(patronID string) *BusinessError {
	return NewBusinessError(
		ErrCodePatronNotFound,
		fmt.Sprintf("Patron with ID %s not found", patronID),
		ErrPatronNotFound,
	)
}

func WrapRecordNotFound(bookID, patronID string) *BusinessError {
	return NewBusinessError(
		ErrCodeRecordNotFound,
		fmt.Sprintf("No active borrowing record for book %s and patron %s", bookID, patronID),
		ErrRecordNotFound,
	)
}

func WrapBookAlreadyBorrowed(bookID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBookAlreadyBorrowed,
		fmt.Sprintf("Book with ID %s is already borrowed", bookID),
		ErrBookAlreadyBorrowed,
	)
}

func WrapMaxBorrowedBooks(patronID string, limit int) *BusinessError {
	return NewBusinessError(
		ErrCodeMaxBorrowedBooks,
		fmt.Sprintf("Patron %s already has %d active loans", patronID, limit),
		ErrMaxBorrowedBooksReached,
	)
}

func WrapOverdueBooksExist(patronID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOverdueBooksExist,
		fmt.Sprintf("Patron %s has overdue books and cannot borrow", patronID),
		ErrOverdueBooksExist,
	)
}

func WrapDuplicateISBN(isbn string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateISBN,
		fmt.Sprintf("A book with ISBN %s already exists", isbn),
		ErrDuplicateISBN,
	)
}

func WrapDuplicateEmail(email string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicateEmail,
		fmt.Sprintf("A patron with email %s already exists", email),
		ErrDuplicateEmail,
	)
}

func WrapInvalidBorrowDate() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidBorrowDate,
		"Borrow date cannot be in the future",
		ErrBorrowDateInFuture,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

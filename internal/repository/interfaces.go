package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhmd-zbib/library-management/internal/domain"
)

// BookRepository defines the interface for book data operations
type BookRepository interface {
	// Create inserts a new book
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// Update updates a book
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAll returns books matching the filter, paginated, with the total count
	FindAll(ctx context.Context, filter domain.BookFilter, page domain.PageRequest) ([]*domain.Book, int64, error)
}

// PatronRepository defines the interface for patron data operations
type PatronRepository interface {
	// Create inserts a new patron
	Create(ctx context.Context, patron *domain.Patron) error

	// GetByID retrieves a patron by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patron, error)

	// Update updates a patron
	Update(ctx context.Context, patron *domain.Patron) error

	// Delete removes a patron
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAll returns patrons, paginated, with the total count
	FindAll(ctx context.Context, page domain.PageRequest) ([]*domain.Patron, int64, error)
}

// PolicyStore is the read-only view the lending policy consults. It is
// implemented by the repository itself and by the transaction-scoped store
// passed to the check callback of Borrow, so the same checks run against
// either.
type PolicyStore interface {
	// ExistsActiveLoanForBook reports whether the book has a BORROWED record
	ExistsActiveLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error)

	// CountActiveLoans counts the patron's BORROWED records
	CountActiveLoans(ctx context.Context, patronID uuid.UUID) (int, error)

	// CountOverdueLoans counts the patron's BORROWED records whose due date
	// lies before asOf
	CountOverdueLoans(ctx context.Context, patronID uuid.UUID, asOf time.Time) (int, error)
}

// BorrowingRepository defines the interface for borrowing record data
// operations. Records are never deleted; they are retained as lending history.
type BorrowingRepository interface {
	PolicyStore

	// Borrow inserts the record inside a single transaction that first locks
	// the target book row and then runs check against the transaction-scoped
	// store. Losing a race against a concurrent borrow of the same book
	// surfaces as ErrBookAlreadyBorrowed.
	Borrow(ctx context.Context, record *domain.BorrowingRecord, check func(ctx context.Context, store PolicyStore) error) error

	// FindActive returns the unique BORROWED record for the (book, patron) pair
	FindActive(ctx context.Context, bookID, patronID uuid.UUID) (*domain.BorrowingRecord, error)

	// MarkReturned transitions a record from BORROWED to RETURNED, stamping
	// returnedAt. The update is conditional on the current status, so a
	// concurrent double return loses cleanly.
	MarkReturned(ctx context.Context, recordID uuid.UUID, returnedAt time.Time) error

	// UpdateFine sets the accrued fine amount on a record
	UpdateFine(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal) error

	// FindOverdue returns all BORROWED records whose due date lies before asOf
	FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.BorrowingRecord, error)

	// FindAll returns record details matching the filter, paginated, with the
	// total count
	FindAll(ctx context.Context, filter domain.RecordFilter, now time.Time, page domain.PageRequest) ([]*domain.BorrowingRecordDetail, int64, error)
}

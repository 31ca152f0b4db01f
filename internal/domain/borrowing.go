package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BorrowingStatusBorrowed = "BORROWED"
	BorrowingStatusReturned = "RETURNED"
)

// BorrowingRecord represents one lending of a book to a patron. Records are
// never hard-deleted; a returned record stays as lending history.
type BorrowingRecord struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	BookID     uuid.UUID       `json:"book_id" db:"book_id"`
	PatronID   uuid.UUID       `json:"patron_id" db:"patron_id"`
	BorrowDate time.Time       `json:"borrow_date" db:"borrow_date"`
	DueDate    time.Time       `json:"due_date" db:"due_date"`
	ReturnDate *time.Time      `json:"return_date" db:"return_date"`
	Status     string          `json:"status" db:"status"`
	FineAmount decimal.Decimal `json:"fine_amount" db:"fine_amount"`
	Notes      string          `json:"notes" db:"notes"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// IsOverdue is derived from the record state and the given clock, never read
// from a stored flag.
func (r *BorrowingRecord) IsOverdue(now time.Time) bool {
	return r.Status == BorrowingStatusBorrowed && now.After(r.DueDate)
}

// BorrowBookRequest is the caller-supplied part of a borrow operation. The
// borrow date is optional; when absent the record is stamped with the current
// time, when present it must not lie in the future.
type BorrowBookRequest struct {
	BorrowDate *time.Time `json:"borrow_date"`
	Notes      string     `json:"notes" validate:"omitempty,max=500"`
}

// RecordFilter narrows borrowing record listings. Every field is optional;
// nil means "no constraint". Present fields combine with AND.
type RecordFilter struct {
	BookID   *uuid.UUID
	PatronID *uuid.UUID
	Status   *string
	FromDate *time.Time
	ToDate   *time.Time
	Overdue  *bool
}

// BorrowingRecordDetail is a record joined with the book and patron it
// references, as read from the store for listing.
type BorrowingRecordDetail struct {
	ID          uuid.UUID       `db:"id"`
	BookID      uuid.UUID       `db:"book_id"`
	BookTitle   string          `db:"book_title"`
	BookISBN    string          `db:"book_isbn"`
	PatronID    uuid.UUID       `db:"patron_id"`
	PatronName  string          `db:"patron_name"`
	PatronEmail string          `db:"patron_email"`
	BorrowDate  time.Time       `db:"borrow_date"`
	DueDate     time.Time       `db:"due_date"`
	ReturnDate  *time.Time      `db:"return_date"`
	Status      string          `db:"status"`
	FineAmount  decimal.Decimal `db:"fine_amount"`
	Notes       string          `db:"notes"`
}

// BorrowingRecordResponse is the flattened view served to callers.
type BorrowingRecordResponse struct {
	ID          uuid.UUID       `json:"id"`
	BookID      uuid.UUID       `json:"book_id"`
	BookTitle   string          `json:"book_title"`
	BookISBN    string          `json:"book_isbn"`
	PatronID    uuid.UUID       `json:"patron_id"`
	PatronName  string          `json:"patron_name"`
	PatronEmail string          `json:"patron_email"`
	BorrowDate  string          `json:"borrow_date"`
	DueDate     string          `json:"due_date"`
	ReturnDate  string          `json:"return_date,omitempty"`
	Status      string          `json:"status"`
	IsOverdue   bool            `json:"is_overdue"`
	FineAmount  decimal.Decimal `json:"fine_amount"`
	Notes       string          `json:"notes,omitempty"`
}

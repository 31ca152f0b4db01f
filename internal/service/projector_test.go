package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/service"
)

func TestProjectBorrowingRecord(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	detail := &domain.BorrowingRecordDetail{
		ID:          uuid.New(),
		BookID:      uuid.New(),
		BookTitle:   "The Pragmatic Programmer",
		BookISBN:    "978-0135957059",
		PatronID:    uuid.New(),
		PatronName:  "Jane Doe",
		PatronEmail: "jane@example.com",
		BorrowDate:  time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC),
		Status:      domain.BorrowingStatusBorrowed,
		FineAmount:  decimal.RequireFromString("2.50"),
		Notes:       "front desk pickup",
	}

	view := service.ProjectBorrowingRecord(detail, now)

	assert.Equal(t, detail.ID, view.ID)
	assert.Equal(t, "The Pragmatic Programmer", view.BookTitle)
	assert.Equal(t, "978-0135957059", view.BookISBN)
	assert.Equal(t, "Jane Doe", view.PatronName)
	assert.Equal(t, "jane@example.com", view.PatronEmail)
	assert.Equal(t, "2024-05-01 09:30:00", view.BorrowDate)
	assert.Equal(t, "2024-05-15 09:30:00", view.DueDate)
	assert.Empty(t, view.ReturnDate)
	assert.Equal(t, domain.BorrowingStatusBorrowed, view.Status)
	assert.True(t, view.IsOverdue)
	assert.Equal(t, "front desk pickup", view.Notes)
	assert.True(t, view.FineAmount.Equal(decimal.RequireFromString("2.50")))
}

// Overdue is a point-in-time projection, not a stored flag: the same row
// projects differently depending on the clock, and a returned record is never
// overdue no matter how late it came back.
func TestProjectBorrowingRecord_Overdue(t *testing.T) {
	dueDate := time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC)
	returnDate := dueDate.AddDate(0, 0, 5)

	tests := []struct {
		name       string
		status     string
		returnDate *time.Time
		now        time.Time
		overdue    bool
	}{
		{"active before due date", domain.BorrowingStatusBorrowed, nil, dueDate.AddDate(0, 0, -1), false},
		{"active on due date", domain.BorrowingStatusBorrowed, nil, dueDate, false},
		{"active past due date", domain.BorrowingStatusBorrowed, nil, dueDate.AddDate(0, 0, 1), true},
		{"returned late is not overdue", domain.BorrowingStatusReturned, &returnDate, dueDate.AddDate(0, 0, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := &domain.BorrowingRecordDetail{
				DueDate:    dueDate,
				ReturnDate: tt.returnDate,
				Status:     tt.status,
				FineAmount: decimal.Zero,
			}

			view := service.ProjectBorrowingRecord(detail, tt.now)

			assert.Equal(t, tt.overdue, view.IsOverdue)
		})
	}
}

func TestProjectBorrowingRecord_ReturnDateFormatted(t *testing.T) {
	returnDate := time.Date(2024, 5, 18, 14, 45, 10, 0, time.UTC)

	detail := &domain.BorrowingRecordDetail{
		DueDate:    time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC),
		ReturnDate: &returnDate,
		Status:     domain.BorrowingStatusReturned,
		FineAmount: decimal.Zero,
	}

	view := service.ProjectBorrowingRecord(detail, time.Now())

	assert.Equal(t, "2024-05-18 14:45:10", view.ReturnDate)
}

func TestProjectBook(t *testing.T) {
	book := &domain.Book{
		ID:              uuid.New(),
		Title:           "Effective Go",
		Author:          "The Go Team",
		PublicationYear: 2012,
		ISBN:            "978-0000000000",
	}

	view := service.ProjectBook(book)

	assert.Equal(t, book.ID, view.ID)
	assert.Equal(t, book.Title, view.Title)
	assert.Equal(t, book.Author, view.Author)
	assert.Equal(t, book.PublicationYear, view.PublicationYear)
	assert.Equal(t, book.ISBN, view.ISBN)
}

func TestProjectPatron(t *testing.T) {
	expiry := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	patron := &domain.Patron{
		ID:                   uuid.New(),
		FirstName:            "Jane",
		LastName:             "Doe",
		Email:                "jane@example.com",
		PhoneNumber:          "+1-555-0100",
		Address:              "1 Library Way",
		MembershipExpiryDate: &expiry,
	}

	view := service.ProjectPatron(patron)

	assert.Equal(t, patron.ID, view.ID)
	assert.Equal(t, "Jane", view.FirstName)
	assert.Equal(t, "Doe", view.LastName)
	assert.Equal(t, "jane@example.com", view.Email)
	assert.Equal(t, &expiry, view.MembershipExpiryDate)
}

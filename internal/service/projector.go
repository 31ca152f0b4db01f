package service

import (
	"time"

	"github.com/mhmd-zbib/library-management/internal/domain"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// ProjectBorrowingRecord maps a joined record row to the flattened view
// served to callers. Pure; overdue is computed against the supplied clock at
// projection time.
func ProjectBorrowingRecord(detail *domain.BorrowingRecordDetail, now time.Time) *domain.BorrowingRecordResponse {
	view := &domain.BorrowingRecordResponse{
		ID:          detail.ID,
		BookID:      detail.BookID,
		BookTitle:   detail.BookTitle,
		BookISBN:    detail.BookISBN,
		PatronID:    detail.PatronID,
		PatronName:  detail.PatronName,
		PatronEmail: detail.PatronEmail,
		BorrowDate:  detail.BorrowDate.Format(dateTimeLayout),
		DueDate:     detail.DueDate.Format(dateTimeLayout),
		Status:      detail.Status,
		IsOverdue:   detail.Status == domain.BorrowingStatusBorrowed && now.After(detail.DueDate),
		FineAmount:  detail.FineAmount,
		Notes:       detail.Notes,
	}

	if detail.ReturnDate != nil {
		view.ReturnDate = detail.ReturnDate.Format(dateTimeLayout)
	}

	return view
}

// ProjectBook maps a book entity to its response shape.
func ProjectBook(book *domain.Book) *domain.BookResponse {
	return &domain.BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		PublicationYear: book.PublicationYear,
		ISBN:            book.ISBN,
	}
}

// ProjectPatron maps a patron entity to its response shape.
func ProjectPatron(patron *domain.Patron) *domain.PatronResponse {
	return &domain.PatronResponse{
		ID:                   patron.ID,
		FirstName:            patron.FirstName,
		LastName:             patron.LastName,
		Email:                patron.Email,
		PhoneNumber:          patron.PhoneNumber,
		Address:              patron.Address,
		MembershipExpiryDate: patron.MembershipExpiryDate,
	}
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mhmd-zbib/library-management/internal/config"
	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/repository"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
	"github.com/mhmd-zbib/library-management/pkg/utils"
)

// BorrowingService owns the borrowing record lifecycle: record creation,
// due-date computation and the BORROWED -> RETURNED transition.
type BorrowingService struct {
	Records repository.BorrowingRepository
	Books   repository.BookRepository
	Patrons repository.PatronRepository
	Policy  LendingPolicy
	Config  *config.Config

	// Now is the clock; tests override it.
	Now func() time.Time
}

func NewBorrowingService(
	records repository.BorrowingRepository,
	books repository.BookRepository,
	patrons repository.PatronRepository,
	cfg *config.Config,
) *BorrowingService {
	return &BorrowingService{
		Records: records,
		Books:   books,
		Patrons: patrons,
		Policy:  LendingPolicy{MaxBorrowedBooks: cfg.Lending.MaxBorrowedBooks},
		Config:  cfg,
		Now:     time.Now,
	}
}

// BorrowBook creates a borrowing record for the given book and patron. The
// lending policy check and the insert run inside one store transaction, so
// two concurrent borrows of the same book cannot both pass the availability
// check.
func (s *BorrowingService) BorrowBook(ctx context.Context, request *domain.BorrowBookRequest, bookID, patronID uuid.UUID) error {
	now := s.Now()

	if _, err := s.Books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapBookNotFound(bookID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if _, err := s.Patrons.GetByID(ctx, patronID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPatronNotFound(patronID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	borrowDate := now
	if request.BorrowDate != nil {
		if request.BorrowDate.After(now) {
			return customError.WrapInvalidBorrowDate()
		}
		borrowDate = *request.BorrowDate
	}

	record := &domain.BorrowingRecord{
		ID:         uuid.New(),
		BookID:     bookID,
		PatronID:   patronID,
		BorrowDate: borrowDate,
		DueDate:    utils.CalculateDueDate(borrowDate, s.Config.Lending.BorrowDurationDays),
		Status:     domain.BorrowingStatusBorrowed,
		FineAmount: decimal.Zero,
		Notes:      request.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.Records.Borrow(ctx, record, func(ctx context.Context, store repository.PolicyStore) error {
		return s.Policy.CanBorrow(ctx, store, bookID, patronID, now)
	})
	if err != nil {
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return err
		}
		// Lost race against a concurrent borrow: the unique constraint on
		// active loans rejected the insert.
		if errors.Is(err, customError.ErrBookAlreadyBorrowed) {
			return customError.WrapBookAlreadyBorrowed(bookID.String())
		}
		// Book deleted between the lookup above and the row lock.
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapBookNotFound(bookID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// ReturnBook transitions the unique active record for the (book, patron)
// pair to RETURNED, stamping the return date with the current time. The
// update is conditional on the record still being BORROWED, so a concurrent
// double return fails with a not-found instead of silently succeeding.
func (s *BorrowingService) ReturnBook(ctx context.Context, bookID, patronID uuid.UUID) error {
	record, err := s.Records.FindActive(ctx, bookID, patronID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapRecordNotFound(bookID.String(), patronID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.Records.MarkReturned(ctx, record.ID, s.Now()); err != nil {
		if errors.Is(err, customError.ErrRecordNotFound) {
			return customError.WrapRecordNotFound(bookID.String(), patronID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// GetBorrowingRecords returns a page of flattened record views matching the
// filter. Reads only; no locking beyond the store's default isolation.
func (s *BorrowingService) GetBorrowingRecords(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) (*domain.Page[*domain.BorrowingRecordResponse], error) {
	page = page.Normalize()
	now := s.Now()

	details, total, err := s.Records.FindAll(ctx, filter, now, page)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	views := make([]*domain.BorrowingRecordResponse, 0, len(details))
	for _, detail := range details {
		views = append(views, ProjectBorrowingRecord(detail, now))
	}

	return domain.NewPage(views, page, total), nil
}

// AccrueFines recomputes the fine amount of every overdue active loan.
// Accrual is an explicit operation driven by the scheduler, not a side
// effect of overdue detection. Returns the number of records updated.
func (s *BorrowingService) AccrueFines(ctx context.Context) (int, error) {
	now := s.Now()

	records, err := s.Records.FindOverdue(ctx, now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	dailyFine := s.Config.GetDailyFineAmount()

	updated := 0
	for _, record := range records {
		fine := utils.CalculateFine(record.DueDate, now, dailyFine)
		if fine.Equal(record.FineAmount) {
			continue
		}
		if err := s.Records.UpdateFine(ctx, record.ID, fine); err != nil {
			return updated, customError.WrapDatabaseError(err)
		}
		updated++
	}

	return updated, nil
}

package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mhmd-zbib/library-management/internal/config"
	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/service"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
	"github.com/mhmd-zbib/library-management/tests/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Lending: config.LendingConfig{
			MaxBorrowedBooks:   5,
			BorrowDurationDays: 14,
			DailyFineAmount:    "0.50",
		},
	}
}

func newTestBorrowingService(
	records *mocks.MockBorrowingRepository,
	books *mocks.MockBookRepository,
	patrons *mocks.MockPatronRepository,
	now time.Time,
) *service.BorrowingService {
	svc := service.NewBorrowingService(records, books, patrons, testConfig())
	svc.Now = func() time.Time { return now }
	return svc
}

func TestBorrowBook(t *testing.T) {
	bookID := uuid.New()
	patronID := uuid.New()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	book := &domain.Book{ID: bookID, Title: "The Go Programming Language", ISBN: "978-0134190440"}
	patron := &domain.Patron{ID: patronID, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}

	allowPolicy := func(records *mocks.MockBorrowingRepository) {
		records.On("ExistsActiveLoanForBook", mock.Anything, bookID).Return(false, nil)
		records.On("CountActiveLoans", mock.Anything, patronID).Return(0, nil)
		records.On("CountOverdueLoans", mock.Anything, patronID, now).Return(0, nil)
	}

	tests := []struct {
		name          string
		request       *domain.BorrowBookRequest
		setupMocks    func(*mocks.MockBorrowingRepository, *mocks.MockBookRepository, *mocks.MockPatronRepository)
		expectedError bool
		expectedCode  string
	}{
		{
			name:    "Success - borrow with default borrow date",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
				allowPolicy(records)
				records.On("Borrow", mock.Anything, mock.MatchedBy(func(rec *domain.BorrowingRecord) bool {
					return rec.BookID == bookID &&
						rec.PatronID == patronID &&
						rec.Status == domain.BorrowingStatusBorrowed &&
						rec.BorrowDate.Equal(now) &&
						rec.DueDate.Equal(now.AddDate(0, 0, 14)) &&
						rec.ReturnDate == nil &&
						rec.FineAmount.IsZero()
				}), mock.Anything).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "Success - caller-supplied borrow date drives the due date",
			request: &domain.BorrowBookRequest{
				BorrowDate: timePtr(now.AddDate(0, 0, -2)),
				Notes:      "reserved at the front desk",
			},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
				allowPolicy(records)
				records.On("Borrow", mock.Anything, mock.MatchedBy(func(rec *domain.BorrowingRecord) bool {
					return rec.BorrowDate.Equal(now.AddDate(0, 0, -2)) &&
						rec.DueDate.Equal(now.AddDate(0, 0, 12)) &&
						rec.Notes == "reserved at the front desk"
				}), mock.Anything).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "Failure - borrow date in the future",
			request: &domain.BorrowBookRequest{
				BorrowDate: timePtr(now.AddDate(0, 0, 1)),
			},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodeInvalidBorrowDate,
		},
		{
			name:    "Failure - book not found",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodeBookNotFound,
		},
		{
			name:    "Failure - patron not found",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(nil, sql.ErrNoRows)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodePatronNotFound,
		},
		{
			name:    "Failure - book already borrowed",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
				records.On("ExistsActiveLoanForBook", mock.Anything, bookID).Return(true, nil)
				records.On("Borrow", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodeBookAlreadyBorrowed,
		},
		{
			name:    "Failure - patron at loan cap",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
				records.On("ExistsActiveLoanForBook", mock.Anything, bookID).Return(false, nil)
				records.On("CountActiveLoans", mock.Anything, patronID).Return(5, nil)
				records.On("Borrow", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodeMaxBorrowedBooks,
		},
		{
			name:    "Failure - patron has overdue loans",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
				records.On("ExistsActiveLoanForBook", mock.Anything, bookID).Return(false, nil)
				records.On("CountActiveLoans", mock.Anything, patronID).Return(1, nil)
				records.On("CountOverdueLoans", mock.Anything, patronID, now).Return(1, nil)
				records.On("Borrow", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodeOverdueBooksExist,
		},
		{
			name:    "Failure - lost race translated to book already borrowed",
			request: &domain.BorrowBookRequest{},
			setupMocks: func(records *mocks.MockBorrowingRepository, books *mocks.MockBookRepository, patrons *mocks.MockPatronRepository) {
				books.On("GetByID", mock.Anything, bookID).Return(book, nil)
				patrons.On("GetByID", mock.Anything, patronID).Return(patron, nil)
				allowPolicy(records)
				records.On("Borrow", mock.Anything, mock.Anything, mock.Anything).Return(customError.ErrBookAlreadyBorrowed)
			},
			expectedError: true,
			expectedCode:  customError.ErrCodeBookAlreadyBorrowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := &mocks.MockBorrowingRepository{}
			books := &mocks.MockBookRepository{}
			patrons := &mocks.MockPatronRepository{}
			tt.setupMocks(records, books, patrons)

			svc := newTestBorrowingService(records, books, patrons, now)

			err := svc.BorrowBook(context.Background(), tt.request, bookID, patronID)

			if !tt.expectedError {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				var businessErr *customError.BusinessError
				require.True(t, errors.As(err, &businessErr))
				assert.Equal(t, tt.expectedCode, businessErr.Code)
			}

			records.AssertExpectations(t)
			books.AssertExpectations(t)
			patrons.AssertExpectations(t)
		})
	}
}

func TestReturnBook(t *testing.T) {
	bookID := uuid.New()
	patronID := uuid.New()
	recordID := uuid.New()
	now := time.Date(2024, 5, 20, 16, 30, 0, 0, time.UTC)

	activeRecord := &domain.BorrowingRecord{
		ID:       recordID,
		BookID:   bookID,
		PatronID: patronID,
		Status:   domain.BorrowingStatusBorrowed,
	}

	t.Run("Success - return stamps the return date", func(t *testing.T) {
		records := &mocks.MockBorrowingRepository{}
		records.On("FindActive", mock.Anything, bookID, patronID).Return(activeRecord, nil)
		records.On("MarkReturned", mock.Anything, recordID, now).Return(nil)

		svc := newTestBorrowingService(records, &mocks.MockBookRepository{}, &mocks.MockPatronRepository{}, now)

		err := svc.ReturnBook(context.Background(), bookID, patronID)

		assert.NoError(t, err)
		records.AssertExpectations(t)
	})

	t.Run("Failure - no active record", func(t *testing.T) {
		records := &mocks.MockBorrowingRepository{}
		records.On("FindActive", mock.Anything, bookID, patronID).Return(nil, sql.ErrNoRows)

		svc := newTestBorrowingService(records, &mocks.MockBookRepository{}, &mocks.MockPatronRepository{}, now)

		err := svc.ReturnBook(context.Background(), bookID, patronID)

		var businessErr *customError.BusinessError
		require.True(t, errors.As(err, &businessErr))
		assert.Equal(t, customError.ErrCodeRecordNotFound, businessErr.Code)
	})

	t.Run("Failure - concurrent double return loses cleanly", func(t *testing.T) {
		records := &mocks.MockBorrowingRepository{}
		records.On("FindActive", mock.Anything, bookID, patronID).Return(activeRecord, nil)
		records.On("MarkReturned", mock.Anything, recordID, now).Return(customError.ErrRecordNotFound)

		svc := newTestBorrowingService(records, &mocks.MockBookRepository{}, &mocks.MockPatronRepository{}, now)

		err := svc.ReturnBook(context.Background(), bookID, patronID)

		var businessErr *customError.BusinessError
		require.True(t, errors.As(err, &businessErr))
		assert.Equal(t, customError.ErrCodeRecordNotFound, businessErr.Code)
	})
}

func TestGetBorrowingRecords(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	patronID := uuid.New()

	details := []*domain.BorrowingRecordDetail{
		{
			ID:          uuid.New(),
			BookID:      uuid.New(),
			BookTitle:   "Clean Architecture",
			BookISBN:    "978-0134494166",
			PatronID:    patronID,
			PatronName:  "Jane Doe",
			PatronEmail: "jane@example.com",
			BorrowDate:  now.AddDate(0, 0, -20),
			DueDate:     now.AddDate(0, 0, -6),
			Status:      domain.BorrowingStatusBorrowed,
			FineAmount:  decimal.Zero,
		},
	}

	records := &mocks.MockBorrowingRepository{}
	filter := domain.RecordFilter{PatronID: &patronID}
	page := domain.PageRequest{Page: 1, Size: 20}
	records.On("FindAll", mock.Anything, filter, now, page).Return(details, int64(1), nil)

	svc := newTestBorrowingService(records, &mocks.MockBookRepository{}, &mocks.MockPatronRepository{}, now)

	result, err := svc.GetBorrowingRecords(context.Background(), filter, domain.PageRequest{})

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, "Clean Architecture", result.Items[0].BookTitle)
	assert.True(t, result.Items[0].IsOverdue)
	records.AssertExpectations(t)
}

func TestAccrueFines(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	staleRecord := &domain.BorrowingRecord{
		ID:         uuid.New(),
		DueDate:    now.AddDate(0, 0, -4),
		Status:     domain.BorrowingStatusBorrowed,
		FineAmount: decimal.Zero,
	}
	currentRecord := &domain.BorrowingRecord{
		ID:         uuid.New(),
		DueDate:    now.AddDate(0, 0, -2),
		Status:     domain.BorrowingStatusBorrowed,
		FineAmount: decimal.RequireFromString("1.00"),
	}

	records := &mocks.MockBorrowingRepository{}
	records.On("FindOverdue", mock.Anything, now).Return([]*domain.BorrowingRecord{staleRecord, currentRecord}, nil)
	records.On("UpdateFine", mock.Anything, staleRecord.ID, decimal.RequireFromString("2.00")).Return(nil)

	svc := newTestBorrowingService(records, &mocks.MockBookRepository{}, &mocks.MockPatronRepository{}, now)

	updated, err := svc.AccrueFines(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	records.AssertExpectations(t)
}

// Walks a full lending lifecycle: borrow on day 0 with a 14-day period,
// overdue by day 20, returned on day 20, after which another patron can
// borrow the same book.
func TestBorrowReturnLifecycle(t *testing.T) {
	bookID := uuid.New()
	patronP := uuid.New()
	patronQ := uuid.New()
	day0 := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	day20 := day0.AddDate(0, 0, 20)

	book := &domain.Book{ID: bookID, Title: "Effective Go"}
	patron := &domain.Patron{ID: patronP}

	var created *domain.BorrowingRecord

	records := &mocks.MockBorrowingRepository{}
	books := &mocks.MockBookRepository{}
	patrons := &mocks.MockPatronRepository{}

	books.On("GetByID", mock.Anything, bookID).Return(book, nil)
	patrons.On("GetByID", mock.Anything, patronP).Return(patron, nil)
	patrons.On("GetByID", mock.Anything, patronQ).Return(&domain.Patron{ID: patronQ}, nil)
	records.On("ExistsActiveLoanForBook", mock.Anything, bookID).Return(false, nil)
	records.On("CountActiveLoans", mock.Anything, mock.Anything).Return(0, nil)
	records.On("CountOverdueLoans", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	records.On("Borrow", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.BorrowingRecord)
	}).Return(nil)

	svc := newTestBorrowingService(records, books, patrons, day0)

	// Day 0: P borrows B.
	require.NoError(t, svc.BorrowBook(context.Background(), &domain.BorrowBookRequest{}, bookID, patronP))
	require.NotNil(t, created)
	assert.Equal(t, domain.BorrowingStatusBorrowed, created.Status)
	assert.True(t, created.DueDate.Equal(day0.AddDate(0, 0, 14)))

	// Day 20: the loan is overdue but was not on day 10.
	assert.False(t, created.IsOverdue(day0.AddDate(0, 0, 10)))
	assert.True(t, created.IsOverdue(day20))

	// Day 20: P returns B.
	svc.Now = func() time.Time { return day20 }
	records.On("FindActive", mock.Anything, bookID, patronP).Return(created, nil)
	records.On("MarkReturned", mock.Anything, created.ID, day20).Return(nil)
	require.NoError(t, svc.ReturnBook(context.Background(), bookID, patronP))

	// Day 20: Q can now borrow B.
	require.NoError(t, svc.BorrowBook(context.Background(), &domain.BorrowBookRequest{}, bookID, patronQ))

	records.AssertExpectations(t)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/mhmd-zbib/library-management/internal/domain"
	"github.com/mhmd-zbib/library-management/internal/repository"
)

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) FindAll(ctx context.Context, filter domain.BookFilter, page domain.PageRequest) ([]*domain.Book, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Book), args.Get(1).(int64), args.Error(2)
}

type MockPatronRepository struct {
	mock.Mock
}

func (m *MockPatronRepository) Create(ctx context.Context, patron *domain.Patron) error {
	args := m.Called(ctx, patron)
	return args.Error(0)
}

func (m *MockPatronRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patron, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patron), args.Error(1)
}

func (m *MockPatronRepository) Update(ctx context.Context, patron *domain.Patron) error {
	args := m.Called(ctx, patron)
	return args.Error(0)
}

func (m *MockPatronRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPatronRepository) FindAll(ctx context.Context, page domain.PageRequest) ([]*domain.Patron, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Patron), args.Get(1).(int64), args.Error(2)
}

// MockBorrowingRepository also serves as a PolicyStore, so tests can run the
// policy check callback of Borrow against the same mock.
type MockBorrowingRepository struct {
	mock.Mock
}

func (m *MockBorrowingRepository) ExistsActiveLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBorrowingRepository) CountActiveLoans(ctx context.Context, patronID uuid.UUID) (int, error) {
	args := m.Called(ctx, patronID)
	return args.Int(0), args.Error(1)
}

func (m *MockBorrowingRepository) CountOverdueLoans(ctx context.Context, patronID uuid.UUID, asOf time.Time) (int, error) {
	args := m.Called(ctx, patronID, asOf)
	return args.Int(0), args.Error(1)
}

// Borrow mirrors the real repository's behavior: the check callback runs
// against this mock as the transaction-scoped store, and its error wins over
// the canned return value.
func (m *MockBorrowingRepository) Borrow(ctx context.Context, record *domain.BorrowingRecord, check func(ctx context.Context, store repository.PolicyStore) error) error {
	args := m.Called(ctx, record, check)
	if check != nil {
		if err := check(ctx, m); err != nil {
			return err
		}
	}
	return args.Error(0)
}

func (m *MockBorrowingRepository) FindActive(ctx context.Context, bookID, patronID uuid.UUID) (*domain.BorrowingRecord, error) {
	args := m.Called(ctx, bookID, patronID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowingRecord), args.Error(1)
}

func (m *MockBorrowingRepository) MarkReturned(ctx context.Context, recordID uuid.UUID, returnedAt time.Time) error {
	args := m.Called(ctx, recordID, returnedAt)
	return args.Error(0)
}

func (m *MockBorrowingRepository) UpdateFine(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, recordID, amount)
	return args.Error(0)
}

func (m *MockBorrowingRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.BorrowingRecord, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BorrowingRecord), args.Error(1)
}

func (m *MockBorrowingRepository) FindAll(ctx context.Context, filter domain.RecordFilter, now time.Time, page domain.PageRequest) ([]*domain.BorrowingRecordDetail, int64, error) {
	args := m.Called(ctx, filter, now, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.BorrowingRecordDetail), args.Get(1).(int64), args.Error(2)
}

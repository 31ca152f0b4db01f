package repository

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/mhmd-zbib/library-management/internal/domain"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
)

// policyQueries implements PolicyStore over either *sqlx.DB or *sqlx.Tx, so
// the lending policy runs the same aggregate queries inside and outside the
// borrow transaction.
type policyQueries struct {
	q sqlx.ExtContext
}

func (p policyQueries) ExistsActiveLoanForBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM borrowing_records
			WHERE book_id = $1 AND status = $2
		)
	`

	var exists bool
	err := sqlx.GetContext(ctx, p.q, &exists, query, bookID, domain.BorrowingStatusBorrowed)
	return exists, err
}

func (p policyQueries) CountActiveLoans(ctx context.Context, patronID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(id) FROM borrowing_records
		WHERE patron_id = $1 AND status = $2
	`

	var count int
	err := sqlx.GetContext(ctx, p.q, &count, query, patronID, domain.BorrowingStatusBorrowed)
	return count, err
}

func (p policyQueries) CountOverdueLoans(ctx context.Context, patronID uuid.UUID, asOf time.Time) (int, error) {
	query := `
		SELECT COUNT(id) FROM borrowing_records
		WHERE patron_id = $1 AND status = $2 AND due_date < $3
	`

	var count int
	err := sqlx.GetContext(ctx, p.q, &count, query, patronID, domain.BorrowingStatusBorrowed, asOf)
	return count, err
}

type borrowingRepository struct {
	policyQueries
	db *sqlx.DB
}

func NewBorrowingRepository(db *sqlx.DB) BorrowingRepository {
	return &borrowingRepository{
		policyQueries: policyQueries{q: db},
		db:            db,
	}
}

// Borrow runs the whole check-then-insert sequence in one transaction. The
// book row is locked first so concurrent borrows of the same book serialize
// on it; the partial unique index on active loans backs this up, translating
// a lost race into ErrBookAlreadyBorrowed instead of a double-lend.
func (r *borrowingRepository) Borrow(ctx context.Context, record *domain.BorrowingRecord, check func(ctx context.Context, store PolicyStore) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lockedID uuid.UUID
	if err := tx.GetContext(ctx, &lockedID, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, record.BookID); err != nil {
		return err
	}

	if err := check(ctx, policyQueries{q: tx}); err != nil {
		return err
	}

	query := `
		INSERT INTO borrowing_records (id, book_id, patron_id, borrow_date, due_date, return_date, status, fine_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.ExecContext(ctx, query,
		record.ID,
		record.BookID,
		record.PatronID,
		record.BorrowDate,
		record.DueDate,
		record.ReturnDate,
		record.Status,
		record.FineAmount,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if isUniqueViolation(err, constraintActiveLoanPerBook) {
		return customError.ErrBookAlreadyBorrowed
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *borrowingRepository) FindActive(ctx context.Context, bookID, patronID uuid.UUID) (*domain.BorrowingRecord, error) {
	query := `
		SELECT id, book_id, patron_id, borrow_date, due_date, return_date, status, fine_amount, notes, created_at, updated_at
		FROM borrowing_records
		WHERE book_id = $1 AND patron_id = $2 AND status = $3
	`

	var record domain.BorrowingRecord
	err := r.db.GetContext(ctx, &record, query, bookID, patronID, domain.BorrowingStatusBorrowed)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// MarkReturned is conditional on the record still being BORROWED; a second
// return of the same record affects zero rows and fails with
// ErrRecordNotFound instead of silently succeeding.
func (r *borrowingRepository) MarkReturned(ctx context.Context, recordID uuid.UUID, returnedAt time.Time) error {
	query := `
		UPDATE borrowing_records
		SET status = $2, return_date = $3, updated_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query, recordID, domain.BorrowingStatusReturned, returnedAt, domain.BorrowingStatusBorrowed)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return customError.ErrRecordNotFound
	}

	return nil
}

func (r *borrowingRepository) UpdateFine(ctx context.Context, recordID uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE borrowing_records
		SET fine_amount = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, recordID, amount, time.Now())
	return err
}

func (r *borrowingRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.BorrowingRecord, error) {
	query := `
		SELECT id, book_id, patron_id, borrow_date, due_date, return_date, status, fine_amount, notes, created_at, updated_at
		FROM borrowing_records
		WHERE status = $1 AND due_date < $2
		ORDER BY due_date
	`

	var records []*domain.BorrowingRecord
	if err := r.db.SelectContext(ctx, &records, query, domain.BorrowingStatusBorrowed, asOf); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *borrowingRepository) FindAll(ctx context.Context, filter domain.RecordFilter, now time.Time, page domain.PageRequest) ([]*domain.BorrowingRecordDetail, int64, error) {
	exprs := recordFilterExpressions(filter, now)

	base := goqu.Dialect(dialectPostgres).
		From(goqu.T("borrowing_records").As("br")).
		InnerJoin(goqu.T("books").As("b"), goqu.On(goqu.I("br.book_id").Eq(goqu.I("b.id")))).
		InnerJoin(goqu.T("patrons").As("p"), goqu.On(goqu.I("br.patron_id").Eq(goqu.I("p.id"))))
	if len(exprs) > 0 {
		base = base.Where(exprs...)
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT(goqu.I("br.id"))).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	selectQuery, args, err := base.
		Select(
			goqu.I("br.id"),
			goqu.I("br.book_id"),
			goqu.I("b.title").As("book_title"),
			goqu.I("b.isbn").As("book_isbn"),
			goqu.I("br.patron_id"),
			goqu.L("p.first_name || ' ' || p.last_name").As("patron_name"),
			goqu.I("p.email").As("patron_email"),
			goqu.I("br.borrow_date"),
			goqu.I("br.due_date"),
			goqu.I("br.return_date"),
			goqu.I("br.status"),
			goqu.I("br.fine_amount"),
			goqu.I("br.notes"),
		).
		Order(goqu.I("br.borrow_date").Desc()).
		Limit(page.Limit()).
		Offset(page.Offset()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var details []*domain.BorrowingRecordDetail
	if err := r.db.SelectContext(ctx, &details, selectQuery, args...); err != nil {
		return nil, 0, err
	}

	return details, total, nil
}

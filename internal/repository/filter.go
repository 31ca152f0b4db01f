package repository

import (
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/mhmd-zbib/library-management/internal/domain"
)

// Filter compilation: sparse optional filter fields become a list of goqu
// expressions combined with AND. An absent (nil) field contributes no
// expression, so an empty filter compiles to the identity predicate and the
// query has no WHERE clause at all.

// recordFilterExpressions compiles a RecordFilter against the borrowing
// records table aliased as "br". The overdue filter is a point-in-time
// predicate evaluated against the supplied clock, not a stored flag.
func recordFilterExpressions(filter domain.RecordFilter, now time.Time) []goqu.Expression {
	exprs := make([]goqu.Expression, 0)

	if filter.BookID != nil {
		exprs = append(exprs, goqu.I("br.book_id").Eq(filter.BookID.String()))
	}

	if filter.PatronID != nil {
		exprs = append(exprs, goqu.I("br.patron_id").Eq(filter.PatronID.String()))
	}

	if filter.Status != nil {
		exprs = append(exprs, goqu.I("br.status").Eq(*filter.Status))
	}

	// Borrow date bounds are inclusive
	if filter.FromDate != nil {
		exprs = append(exprs, goqu.I("br.borrow_date").Gte(*filter.FromDate))
	}

	if filter.ToDate != nil {
		exprs = append(exprs, goqu.I("br.borrow_date").Lte(*filter.ToDate))
	}

	if filter.Overdue != nil && *filter.Overdue {
		exprs = append(exprs,
			goqu.I("br.due_date").Lt(now),
			goqu.I("br.status").Eq(domain.BorrowingStatusBorrowed),
		)
	}

	return exprs
}

// bookFilterExpressions compiles a BookFilter against the books table. Bounds
// are exclusive, matching publication_year > after and < before.
func bookFilterExpressions(filter domain.BookFilter) []goqu.Expression {
	exprs := make([]goqu.Expression, 0)

	if filter.PublishedAfter != nil {
		exprs = append(exprs, goqu.C("publication_year").Gt(*filter.PublishedAfter))
	}

	if filter.PublishedBefore != nil {
		exprs = append(exprs, goqu.C("publication_year").Lt(*filter.PublishedBefore))
	}

	return exprs
}

package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Constraint names from scripts/init.sql. The partial unique index on active
// loans is the store-level backstop that turns a lost borrow race into a
// rejected insert.
const (
	constraintActiveLoanPerBook = "uniq_active_loan_per_book"
	constraintBookISBN          = "uniq_book_isbn"
	constraintPatronEmail       = "uniq_patron_email"
)

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique violation on the
// named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == constraint
}

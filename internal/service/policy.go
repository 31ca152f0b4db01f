package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-zbib/library-management/internal/repository"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
)

// LendingPolicy decides whether a borrow request may proceed. It only reads
// through the store's aggregate queries and never mutates state; the caller
// is responsible for running it inside the same transaction as the insert it
// gates.
type LendingPolicy struct {
	MaxBorrowedBooks int
}

// CanBorrow runs the policy checks in order, short-circuiting on the first
// failure:
//  1. the book has no active loan
//  2. the patron is below the loan cap
//  3. the patron has no overdue loans
func (p LendingPolicy) CanBorrow(ctx context.Context, store repository.PolicyStore, bookID, patronID uuid.UUID, now time.Time) error {
	borrowed, err := store.ExistsActiveLoanForBook(ctx, bookID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if borrowed {
		return customError.WrapBookAlreadyBorrowed(bookID.String())
	}

	active, err := store.CountActiveLoans(ctx, patronID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if active >= p.MaxBorrowedBooks {
		return customError.WrapMaxBorrowedBooks(patronID.String(), active)
	}

	overdue, err := store.CountOverdueLoans(ctx, patronID, now)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if overdue > 0 {
		return customError.WrapOverdueBooksExist(patronID.String())
	}

	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mhmd-zbib/library-management/internal/domain"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
)

type patronRepository struct {
	db *sqlx.DB
}

func NewPatronRepository(db *sqlx.DB) PatronRepository {
	return &patronRepository{db: db}
}

func (r *patronRepository) Create(ctx context.Context, patron *domain.Patron) error {
	query := `
		INSERT INTO patrons (id, first_name, last_name, email, phone_number, address, membership_expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		patron.ID,
		patron.FirstName,
		patron.LastName,
		patron.Email,
		patron.PhoneNumber,
		patron.Address,
		patron.MembershipExpiryDate,
		patron.CreatedAt,
		patron.UpdatedAt,
	)
	if isUniqueViolation(err, constraintPatronEmail) {
		return customError.ErrDuplicateEmail
	}

	return err
}

func (r *patronRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patron, error) {
	query := `
		SELECT id, first_name, last_name, email, phone_number, address, membership_expiry_date, created_at, updated_at
		FROM patrons
		WHERE id = $1
	`

	var patron domain.Patron
	err := r.db.GetContext(ctx, &patron, query, id)
	if err != nil {
		return nil, err
	}

	return &patron, nil
}

func (r *patronRepository) Update(ctx context.Context, patron *domain.Patron) error {
	query := `
		UPDATE patrons
		SET first_name = $2, last_name = $3, email = $4, phone_number = $5, address = $6, membership_expiry_date = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		patron.ID,
		patron.FirstName,
		patron.LastName,
		patron.Email,
		patron.PhoneNumber,
		patron.Address,
		patron.MembershipExpiryDate,
		time.Now(),
	)
	if isUniqueViolation(err, constraintPatronEmail) {
		return customError.ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return customError.ErrPatronNotFound
	}

	return nil
}

func (r *patronRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patrons WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return customError.ErrPatronNotFound
	}

	return nil
}

func (r *patronRepository) FindAll(ctx context.Context, page domain.PageRequest) ([]*domain.Patron, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(id) FROM patrons`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, first_name, last_name, email, phone_number, address, membership_expiry_date, created_at, updated_at
		FROM patrons
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`

	var patrons []*domain.Patron
	if err := r.db.SelectContext(ctx, &patrons, query, page.Limit(), page.Offset()); err != nil {
		return nil, 0, err
	}

	return patrons, total, nil
}

package repository

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mhmd-zbib/library-management/internal/domain"
	customError "github.com/mhmd-zbib/library-management/pkg/errors"
)

const dialectPostgres = "postgres"

type bookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO books (id, title, author, publication_year, isbn, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.ISBN,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if isUniqueViolation(err, constraintBookISBN) {
		return customError.ErrDuplicateISBN
	}

	return err
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `
		SELECT id, title, author, publication_year, isbn, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := r.db.GetContext(ctx, &book, query, id)
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, publication_year = $4, isbn = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.ISBN,
		time.Now(),
	)
	if isUniqueViolation(err, constraintBookISBN) {
		return customError.ErrDuplicateISBN
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return customError.ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return customError.ErrBookNotFound
	}

	return nil
}

func (r *bookRepository) FindAll(ctx context.Context, filter domain.BookFilter, page domain.PageRequest) ([]*domain.Book, int64, error) {
	exprs := bookFilterExpressions(filter)

	base := goqu.Dialect(dialectPostgres).From("books")
	if len(exprs) > 0 {
		base = base.Where(exprs...)
	}

	countQuery, countArgs, err := base.Select(goqu.COUNT(goqu.C("id"))).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	selectQuery, args, err := base.
		Select("id", "title", "author", "publication_year", "isbn", "created_at", "updated_at").
		Order(goqu.C("title").Asc()).
		Limit(page.Limit()).
		Offset(page.Offset()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var books []*domain.Book
	if err := r.db.SelectContext(ctx, &books, selectQuery, args...); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/go-book-crud-gin/internal/model"
	"gorm.io/gorm"
)

// ErrConstraintViolation marks a write rejected by a store integrity rule
// (unique isbn, foreign key, check). The store detail is wrapped with it.
var ErrConstraintViolation = errors.New("constraint violation")

type BookRepository interface {
	SaveAll(ctx context.Context, books []model.Book) []model.Book
	FindAll(ctx context.Context) ([]model.Book, error)
	Save(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	Delete(ctx context.Context, book *model.Book) error
	Transaction(ctx context.Context, fn func(repo BookRepository) error) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// SaveAll inserts books in a single transaction. Any failure rolls the whole
// batch back, is logged, and yields an empty slice instead of an error.
func (r *GormBookRepository) SaveAll(ctx context.Context, books []model.Book) []model.Book {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&books).Error
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to save sample books", "error", err)
		return []model.Book{}
	}

	slog.InfoContext(ctx, "sample books saved successfully", "count", len(books))
	return books
}

func (r *GormBookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	books := []model.Book{}
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Save inserts book when it has no ID yet and updates every column otherwise.
// The assigned ID is written back into book.
func (r *GormBookRepository) Save(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return classify(err)
	}

	slog.InfoContext(ctx, "book saved successfully", "book", book.String())
	return nil
}

// FindByID returns (nil, nil) when no row matches. A zero id is treated the
// same way after being logged.
func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	if id == 0 {
		slog.ErrorContext(ctx, "book id cannot be empty")
		return nil, nil
	}

	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) Delete(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Delete(book).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Transaction runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *GormBookRepository) Transaction(ctx context.Context, fn func(repo BookRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormBookRepository{db: tx})
	})
}

// IsConstraintViolation reports whether err comes from a store integrity rule.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	// integrity_constraint_violation class
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
	}

	return false
}

// ConstraintError carries the store error behind an integrity violation. It
// matches ErrConstraintViolation with errors.Is.
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	return e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func classify(err error) error {
	if IsConstraintViolation(err) && !errors.Is(err, ErrConstraintViolation) {
		return &ConstraintError{Err: err}
	}
	return err
}

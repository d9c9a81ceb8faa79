package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/go-book-crud-gin/internal/model"
	"github.com/snnyvrz/go-book-crud-gin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormBookRepository_SaveAll_Fresh(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	saved := repo.SaveAll(context.Background(), model.SampleBooks())

	require.Len(t, saved, 4)
	for _, b := range saved {
		assert.NotZero(t, b.ID, "expected id to be assigned for %s", b.ISBN)
	}
	assert.Equal(t, int64(4), testutil.CountBooks(t, db))
}

func TestGormBookRepository_SaveAll_DuplicateRollsBackAndReturnsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	testutil.SeedBook(t, db, "978-1-4919-1882-6", "Already here")

	saved := repo.SaveAll(ctx, model.SampleBooks())

	assert.NotNil(t, saved)
	assert.Empty(t, saved)
	assert.Equal(t, int64(1), testutil.CountBooks(t, db), "partial batch must not be persisted")
}

func TestGormBookRepository_SaveAll_StoreErrorReturnsEmpty(t *testing.T) {
	repo := NewGormBookRepository(testutil.NewErrorDB(t))

	saved := repo.SaveAll(context.Background(), model.SampleBooks())

	assert.NotNil(t, saved)
	assert.Empty(t, saved)
}

func TestGormBookRepository_FindAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	books, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	testutil.SeedBook(t, db, "111", "One")
	testutil.SeedBook(t, db, "222", "Two")

	books, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestGormBookRepository_FindAll_StoreError(t *testing.T) {
	repo := NewGormBookRepository(testutil.NewErrorDB(t))

	books, err := repo.FindAll(context.Background())

	assert.Error(t, err)
	assert.Nil(t, books)
}

func TestGormBookRepository_Save_InsertAssignsID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	book := testutil.NewBook("978-0-00-000000-1", "New")
	require.NoError(t, repo.Save(context.Background(), &book))

	assert.NotZero(t, book.ID)

	var stored model.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, book, stored)
}

func TestGormBookRepository_Save_UpdatesExisting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	book := testutil.SeedBook(t, db, "978-0-00-000000-2", "Before")
	book.Title = "After"
	book.PublicationYear = 1999

	require.NoError(t, repo.Save(ctx, &book))

	stored, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "After", stored.Title)
	assert.Equal(t, 1999, stored.PublicationYear)
	assert.Equal(t, int64(1), testutil.CountBooks(t, db))
}

func TestGormBookRepository_Save_DuplicateISBN(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	testutil.SeedBook(t, db, "978-3-16-148410-0", "First")

	dup := testutil.NewBook("978-3-16-148410-0", "Second")
	err := repo.Save(context.Background(), &dup)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.True(t, IsConstraintViolation(err))
}

func TestGormBookRepository_Save_StoreError(t *testing.T) {
	repo := NewGormBookRepository(testutil.NewErrorDB(t))

	book := testutil.NewBook("1", "x")
	err := repo.Save(context.Background(), &book)

	require.Error(t, err)
	assert.False(t, IsConstraintViolation(err))
}

func TestGormBookRepository_FindByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedBook(t, db, "978-0-00-000000-3", "Found")

	t.Run("existing", func(t *testing.T) {
		book, err := repo.FindByID(ctx, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, book)
		assert.Equal(t, seeded, *book)
	})

	t.Run("missing", func(t *testing.T) {
		book, err := repo.FindByID(ctx, 999999)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("zero id", func(t *testing.T) {
		book, err := repo.FindByID(ctx, 0)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})
}

func TestGormBookRepository_FindByID_StoreError(t *testing.T) {
	repo := NewGormBookRepository(testutil.NewErrorDB(t))

	book, err := repo.FindByID(context.Background(), 1)

	assert.Error(t, err)
	assert.Nil(t, book)
}

func TestGormBookRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	book := testutil.SeedBook(t, db, "978-0-00-000000-4", "Doomed")

	require.NoError(t, repo.Delete(ctx, &book))

	found, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormBookRepository_Transaction_RollsBackOnError(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx BookRepository) error {
		b := testutil.NewBook("978-0-00-000000-5", "Rolled back")
		if err := tx.Save(ctx, &b); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), testutil.CountBooks(t, db))
}

func TestGormBookRepository_Transaction_Commits(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(tx BookRepository) error {
		b := testutil.NewBook("978-0-00-000000-6", "Kept")
		return tx.Save(ctx, &b)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), testutil.CountBooks(t, db))
}

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("connection refused"), want: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, want: true},
		{name: "postgres unique", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres not null", err: &pgconn.PgError{Code: "23502"}, want: true},
		{name: "postgres syntax", err: &pgconn.PgError{Code: "42601"}, want: false},
		{name: "wrapped sentinel", err: classify(gorm.ErrDuplicatedKey), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConstraintViolation(tt.err))
		})
	}
}

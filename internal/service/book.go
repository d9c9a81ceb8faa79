package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/snnyvrz/go-book-crud-gin/internal/model"
	"github.com/snnyvrz/go-book-crud-gin/internal/repository"
)

type BookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) *BookService {
	return &BookService{repo: repo}
}

// SeedSampleBooks stores the sample set. An empty result means the insert
// failed; the cause is only logged by the repository.
func (s *BookService) SeedSampleBooks(ctx context.Context) []model.Book {
	return s.repo.SaveAll(ctx, model.SampleBooks())
}

func (s *BookService) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, NotFound(id)
	}
	return book, nil
}

// UpdateByID replaces every field of the stored book except ID and ISBN with
// the values from patch.
func (s *BookService) UpdateByID(ctx context.Context, id uint, patch *model.Book) (*model.Book, error) {
	var updated *model.Book

	err := s.repo.Transaction(ctx, func(repo repository.BookRepository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return NotFound(id)
		}
		if patch == nil {
			return InvalidArgument("Book cannot be null")
		}

		existing.Title = patch.Title
		existing.Author = patch.Author
		existing.Publisher = patch.Publisher
		existing.PublicationYear = patch.PublicationYear
		existing.Genre = patch.Genre
		existing.Language = patch.Language
		existing.Description = patch.Description

		if err := repo.Save(ctx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "book updated successfully", "book", updated.String())
	return updated, nil
}

// DeleteByID fails with NotFound when id is unknown. A failing delete is
// logged and reported as false with a nil error.
func (s *BookService) DeleteByID(ctx context.Context, id uint) (bool, error) {
	var found bool

	err := s.repo.Transaction(ctx, func(repo repository.BookRepository) error {
		book, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if book == nil {
			return NotFound(id)
		}
		found = true

		if err := repo.Delete(ctx, book); err != nil {
			return err
		}

		slog.InfoContext(ctx, "book deleted successfully", "book", book.String())
		return nil
	})
	if err == nil {
		return true, nil
	}

	if IsNotFound(err) {
		slog.ErrorContext(ctx, "book not found", "id", id)
		return false, err
	}
	if !found {
		return false, err
	}

	slog.ErrorContext(ctx, "error deleting book", "id", id, "error", err)
	return false, nil
}

func (s *BookService) ListAll(ctx context.Context) ([]model.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *BookService) Add(ctx context.Context, book *model.Book) (*model.Book, error) {
	if book == nil {
		slog.ErrorContext(ctx, "book cannot be null")
		return nil, InvalidArgument("Book cannot be null")
	}

	if err := s.repo.Save(ctx, book); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return nil, ConstraintViolation(err)
		}

		slog.ErrorContext(ctx, "error saving book", "book", book.String(), "error", err)
		return nil, err
	}

	return book, nil
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/go-book-crud-gin/internal/model"
	"github.com/snnyvrz/go-book-crud-gin/internal/validation"
)

// BookService is the part of service.BookService the HTTP layer uses.
type BookService interface {
	SeedSampleBooks(ctx context.Context) []model.Book
	GetByID(ctx context.Context, id uint) (*model.Book, error)
	UpdateByID(ctx context.Context, id uint, patch *model.Book) (*model.Book, error)
	DeleteByID(ctx context.Context, id uint) (bool, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	Add(ctx context.Context, book *model.Book) (*model.Book, error)
}

type BookHandler struct {
	svc BookService
}

func NewBookHandler(svc BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.POST("/save", h.SeedBooks)
		books.GET("", h.ListBooks)
		books.POST("", h.CreateBook)
		books.GET("/:id", h.GetBookByID)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// SeedBooks godoc
// @Summary      Store the sample books
// @Description  Inserts the four sample books in one transaction. Returns an empty list when the insert fails.
// @Tags         books
// @Produce      json
// @Success      200  {array}   model.Book
// @Router       /books/save [post]
func (h *BookHandler) SeedBooks(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.SeedSampleBooks(c.Request.Context()))
}

// ListBooks godoc
// @Summary      List books
// @Description  Get every stored book
// @Tags         books
// @Produce      json
// @Success      200  {array}   model.Book
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Store a new book. The isbn must be unique.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      BookRequest    true  "Book to create"
// @Success      200      {object}  model.Book
// @Failure      400      {object}  ErrorResponse  "Invalid body or duplicate isbn"
// @Failure      500      {object}  ErrorResponse  "Missing body or internal error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	book, ok := bindBook(c)
	if !ok {
		return
	}

	created, err := h.svc.Add(c.Request.Context(), book)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, created)
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  model.Book
// @Failure      400  {object}  ErrorResponse  "Invalid ID"
// @Failure      404  {object}  ErrorResponse  "Book not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Replace every field except id and isbn
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Book ID"
// @Param        payload  body      BookRequest    true  "New field values"
// @Success      200      {object}  model.Book
// @Failure      400      {object}  ErrorResponse  "Invalid ID or body"
// @Failure      404      {object}  ErrorResponse  "Book not found"
// @Failure      500      {object}  ErrorResponse  "Missing body or internal error"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	patch, ok := bindBook(c)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateByID(c.Request.Context(), id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Answers 200 with an empty body, also when the store refused the delete.
// @Tags         books
// @Param        id   path      int  true  "Book ID"
// @Success      200
// @Failure      400  {object}  ErrorResponse  "Invalid ID"
// @Failure      404  {object}  ErrorResponse  "Book not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.svc.DeleteByID(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !deleted {
		slog.WarnContext(ctx, "book was not deleted", "id", id)
	}

	c.Status(http.StatusOK)
}

// bindBook returns a nil book for an empty or null body so the service can
// reject it.
func bindBook(c *gin.Context) (*model.Book, bool) {
	var req BookRequest
	present, err := validation.BindJSON(c, &req)
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	if !present {
		return nil, true
	}
	return req.toModel(), true
}

func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil {
		_ = c.Error(&validation.RequestError{Message: "invalid book id: " + raw})
		return 0, false
	}
	return uint(id), true
}

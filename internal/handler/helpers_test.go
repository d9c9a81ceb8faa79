package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/go-book-crud-gin/internal/model"
	"github.com/snnyvrz/go-book-crud-gin/internal/repository"
	"github.com/snnyvrz/go-book-crud-gin/internal/service"
	"github.com/snnyvrz/go-book-crud-gin/internal/testutil"
	"gorm.io/gorm"
)

type fakeBookService struct {
	SeedFn   func(ctx context.Context) []model.Book
	GetFn    func(ctx context.Context, id uint) (*model.Book, error)
	UpdateFn func(ctx context.Context, id uint, patch *model.Book) (*model.Book, error)
	DeleteFn func(ctx context.Context, id uint) (bool, error)
	ListFn   func(ctx context.Context) ([]model.Book, error)
	AddFn    func(ctx context.Context, book *model.Book) (*model.Book, error)
}

func (f *fakeBookService) SeedSampleBooks(ctx context.Context) []model.Book {
	if f.SeedFn != nil {
		return f.SeedFn(ctx)
	}
	return []model.Book{}
}

func (f *fakeBookService) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, id)
	}
	return nil, service.NotFound(id)
}

func (f *fakeBookService) UpdateByID(ctx context.Context, id uint, patch *model.Book) (*model.Book, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, patch)
	}
	return patch, nil
}

func (f *fakeBookService) DeleteByID(ctx context.Context, id uint) (bool, error) {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return true, nil
}

func (f *fakeBookService) ListAll(ctx context.Context) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return []model.Book{}, nil
}

func (f *fakeBookService) Add(ctx context.Context, book *model.Book) (*model.Book, error) {
	if f.AddFn != nil {
		return f.AddFn(ctx, book)
	}
	return book, nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	svc := service.NewBookService(repository.NewGormBookRepository(db))
	r := NewRouter(NewBookHandler(svc), NewHealthHandler(sqlDB, time.Now(), "test"))

	return r, db
}

func setupRouterWithService(svc BookService, conn Connector) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewBookHandler(svc), NewHealthHandler(conn, time.Now(), "test"))
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v, body=%s", err, w.Body.String())
	}
	return resp
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) model.Book {
	t.Helper()

	var b model.Book
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("failed to unmarshal book: %v, body=%s", err, w.Body.String())
	}
	return b
}

func bookJSON(t *testing.T, req BookRequest) string {
	t.Helper()

	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return string(b)
}

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/go-book-crud-gin/internal/service"
	"github.com/snnyvrz/go-book-crud-gin/internal/validation"
)

const (
	ResourceNotFound   = "Resource"
	ResourceConstraint = "Constraint"
	ResourceRequest    = "Request"

	unexpectedErrorMessage = "An unexpected error occurred"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message   string    `json:"message" example:"Book not found with id: 42"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status" example:"404"`
	Resource  string    `json:"resource" example:"Resource"`
}

func NewErrorResponse(message string, status int, resource string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
		Status:    status,
		Resource:  resource,
	}
}

// TranslateError maps err to a status code and response body. Anything not
// recognised becomes a 500 whose resource is the error's type name.
func TranslateError(err error) (int, ErrorResponse) {
	var reqErr *validation.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, NewErrorResponse(reqErr.Error(), http.StatusBadRequest, ResourceRequest)
	}

	switch service.KindOf(err) {
	case service.KindNotFound:
		return http.StatusNotFound, NewErrorResponse(err.Error(), http.StatusNotFound, ResourceNotFound)
	case service.KindConstraintViolation:
		return http.StatusBadRequest, NewErrorResponse(err.Error(), http.StatusBadRequest, ResourceConstraint)
	}

	return http.StatusInternalServerError,
		NewErrorResponse(unexpectedErrorMessage, http.StatusInternalServerError, errorTypeName(err))
}

func errorTypeName(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind.String()
	}
	return typeName(err)
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "error"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}

// ErrorHandler renders the last error a handler attached with c.Error,
// unless the handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := TranslateError(err)

		ctx := c.Request.Context()
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"resource", body.Resource,
				"error", err,
			)
		} else {
			slog.WarnContext(ctx, "request rejected",
				"status", status,
				"resource", body.Resource,
				"error", err,
			)
		}

		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery turns a panic into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered",
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			NewErrorResponse(unexpectedErrorMessage, http.StatusInternalServerError, typeName(recovered)))
	})
}

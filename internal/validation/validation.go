package validation

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// RequestError is a client mistake found before the service is reached.
type RequestError struct {
	Message string
	Fields  []FieldError
}

func (e *RequestError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

// BindJSON decodes and validates the request body into dst. It reports
// present=false without an error when the body is empty or the JSON literal
// null, leaving dst untouched.
func BindJSON(c *gin.Context, dst any) (present bool, err error) {
	raw, err := c.GetRawData()
	if err != nil {
		return false, &RequestError{Message: "invalid request body"}
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}

	if err := binding.JSON.BindBody(trimmed, dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return true, formatValidationErrors(verrs)
		}

		return true, &RequestError{
			Message: "invalid request body",
			Fields: []FieldError{
				{
					Field:   "",
					Rule:    "syntax",
					Message: err.Error(),
				},
			},
		}
	}

	return true, nil
}

func formatValidationErrors(verrs validator.ValidationErrors) *RequestError {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		jsonField := toJSONFieldName(fe.Field())
		fields = append(fields, FieldError{
			Field:   jsonField,
			Rule:    fe.Tag(),
			Message: buildMessage(jsonField, fe),
		})
	}

	return &RequestError{
		Message: "validation failed",
		Fields:  fields,
	}
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return field + " is required"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}

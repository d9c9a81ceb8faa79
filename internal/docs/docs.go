// Package docs registers the OpenAPI document served under /swagger.
//
// swagger.json is a swag template: Host, BasePath and the other info fields are
// filled from SwaggerInfo when the document is read. Keep it in step with the
// godoc annotations on the handlers.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Book CRUD API",
	Description:      "CRUD API for a catalogue of books.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

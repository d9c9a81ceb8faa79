package handler

import "github.com/gin-gonic/gin"

// NewRouter builds the engine with the middleware chain and every route
// mounted under /api.
func NewRouter(books *BookHandler, health *HealthHandler) *gin.Engine {
	e := gin.New()
	e.Use(RequestID(), AccessLog(), Recovery(), ErrorHandler())

	health.RegisterRoutes(e)

	api := e.Group("/api")
	books.RegisterRoutes(api)

	return e
}

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	DBConnectedMessage = "Database connection is successful!"
	DBFailedMessage    = "Failed to connect to the database."
	DBErrorPrefix      = "Error connecting to the database: "
)

// Connector hands out a single connection from the store. *sql.DB satisfies it.
type Connector interface {
	Conn(ctx context.Context) (*sql.Conn, error)
}

type HealthHandler struct {
	db        Connector
	startTime time.Time
	version   string
}

func NewHealthHandler(db Connector, startTime time.Time, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: startTime,
		version:   version,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
	e.GET("/testdb/connection", h.DBConnection)
	e.GET("/api/books/health", h.DBConnection)
}

// Probe borrows one connection and reports the outcome as a message. It never
// panics.
func (h *HealthHandler) Probe(ctx context.Context) (msg string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok = fmt.Sprintf("%s%v", DBErrorPrefix, r), false
		}
	}()

	conn, err := h.db.Conn(ctx)
	if err != nil {
		return DBErrorPrefix + err.Error(), false
	}
	if conn == nil {
		return DBFailedMessage, false
	}
	defer conn.Close()

	return DBConnectedMessage, true
}

// DBConnection godoc
// @Summary      Check the database connection
// @Description  Always answers 200; the text tells whether a connection could be obtained.
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "Database connection is successful!"
// @Router       /books/health [get]
func (h *HealthHandler) DBConnection(c *gin.Context) {
	msg, ok := h.Probe(c.Request.Context())
	if !ok {
		slog.ErrorContext(c.Request.Context(), "database probe failed", "result", msg)
	}

	c.String(http.StatusOK, msg)
}

func (h *HealthHandler) Health(c *gin.Context) {
	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  int64(uptime.Seconds()),
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	msg, ok := h.Probe(c.Request.Context())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"db": gin.H{
				"status": "down",
				"error":  msg,
			},
		})
		return
	}

	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"version": h.version,
		"uptime":  int64(uptime.Seconds()),
		"db": gin.H{
			"status": "up",
		},
	})
}

// Package server exposes the resume editors over HTTP.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/benjaminschreck/go-resumedit/internal/config"
	"github.com/benjaminschreck/go-resumedit/internal/storage"
	"github.com/benjaminschreck/go-resumedit/pkg/resumedit"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type Handler struct {
	Store     *storage.Store
	Layout    *config.Layout
	MaxUpload int64
	Logger    *resumedit.Logger
}

// NewRouter wires the resume routes onto a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	if h.Layout == nil {
		h.Layout = config.DefaultLayout()
	}
	if h.Logger == nil {
		h.Logger = resumedit.GetLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.Logger))

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})

	g := r.Group("/resume")
	g.POST("/upload", h.HandleUpload)
	g.GET("/:id/sections", h.HandleSections)
	g.GET("/:id/preview/:section", h.HandlePreview)
	g.PATCH("/:id/header", h.HandlePatchHeader)
	g.PATCH("/:id/summary", h.HandlePatchSummary)
	g.PATCH("/:id/education", h.HandlePatchEducation)
	g.PATCH("/:id/skills", h.HandlePatchSkills)
	g.PATCH("/:id/:section/bullets", h.HandlePatchBullets)
	g.POST("/:id/reset", h.HandleReset)
	g.GET("/:id/download", h.HandleDownload)

	return r
}

// requestLogger logs one line per request through the editor logger.
func requestLogger(logger *resumedit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(resumedit.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Round(time.Microsecond),
		}).Info("request")
	}
}

// statusFor maps editor errors onto HTTP status codes.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case resumedit.IsNotFound(err):
		return http.StatusNotFound
	case resumedit.IsEmptyInput(err), errors.Is(err, storage.ErrNotDocx):
		return http.StatusBadRequest
	case resumedit.IsStructural(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.WithField("path", c.Request.URL.Path).Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

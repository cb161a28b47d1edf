// Package server exposes the evaluation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/veridical/veridical/internal/model"
	"github.com/veridical/veridical/internal/refstore"
	"github.com/veridical/veridical/internal/validate"
)

// Evaluator runs the evaluation flow for one source text
type Evaluator interface {
	EvaluateText(ctx context.Context, text string) (*model.Report, error)
}

// Server is the HTTP surface over the evaluation pipeline
type Server struct {
	engine    *gin.Engine
	evaluator Evaluator
	store     *refstore.Store
	addr      string
}

type evaluateRequest struct {
	Text string `json:"text" binding:"required"`
}

// New creates a server
func New(cfg model.ServerConfig, evaluator Evaluator, store *refstore.Store) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = []string{"*"}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		engine:    engine,
		evaluator: evaluator,
		store:     store,
		addr:      cfg.Addr,
	}

	engine.POST("/evaluate", s.handleEvaluate)
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/countries", s.handleCountries)

	return s
}

// Run starts serving and blocks
func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}

// Handler returns the underlying HTTP handler (used by tests)
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	report, err := s.evaluator.EvaluateText(c.Request.Context(), req.Text)
	if err != nil {
		status := http.StatusInternalServerError

		// Request-level validation failures carry enough context for the
		// caller to diagnose the offending claim group
		var mismatch *validate.MetricCountMismatchError
		var noCountry *validate.CountryExtractionError
		switch {
		case errors.As(err, &mismatch):
			status = http.StatusUnprocessableEntity
			c.JSON(status, gin.H{
				"error":   mismatch.Error(),
				"country": mismatch.Country,
				"group":   mismatch.Group,
			})
			return
		case errors.As(err, &noCountry):
			status = http.StatusUnprocessableEntity
			c.JSON(status, gin.H{
				"error":      noCountry.Error(),
				"candidates": noCountry.Candidates,
				"group":      noCountry.Group,
			})
			return
		}

		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": report.Metrics,
		"llm":     report.LLM,
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"rows":   s.store.Len(),
	})
}

func (s *Server) handleCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": s.store.Countries()})
}

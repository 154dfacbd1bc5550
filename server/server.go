// Package server exposes simulations as a JSON HTTP API.
package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/etnz/dca"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handler serves the simulation API.
type Handler struct {
	provider    dca.Provider
	searcher    dca.Searcher // optional
	concurrency int
}

// NewHandler returns a Handler running simulations with prices from p.
// s can be nil, search is then not available.
func NewHandler(p dca.Provider, s dca.Searcher) *Handler {
	return &Handler{provider: p, searcher: s, concurrency: 4}
}

// NewRouter returns a gin engine serving h under /api.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	h.RegisterRoutes(router.Group("/api"))
	return router
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/instruments", h.Instruments)
	r.GET("/search", h.Search)
	r.POST("/simulate", h.Simulate)
}

// Instruments lists the predefined instruments and the default selection.
func (h *Handler) Instruments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"instruments": dca.Predefined(),
		"default":     dca.DefaultInstruments(),
	})
}

// Search looks up instruments matching the "q" query parameter.
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a search term is required"})
		return
	}
	if h.searcher == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "search is not supported by this provider"})
		return
	}
	results, err := h.searcher.Search(c.Request.Context(), q)
	if err != nil {
		log.Printf("search %q failed: %v", q, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SimulateRequest is the body of a simulation request.
//
// Missing fields take the value of dca.DefaultConfig.
type SimulateRequest struct {
	From         *dca.Date        `json:"from"`
	To           *dca.Date        `json:"to"`
	Contribution *decimal.Decimal `json:"contribution"`
	Currency     string           `json:"currency"`
	Period       *dca.Period      `json:"period"`
	Align        bool             `json:"align"`
	Instruments  dca.Instruments  `json:"instruments"`
}

// Config returns the simulation configuration of the request.
func (req SimulateRequest) Config() dca.Config {
	cfg := dca.DefaultConfig()
	if req.From != nil {
		cfg.From = *req.From
	}
	if req.To != nil {
		cfg.To = *req.To
	}
	if req.Contribution != nil {
		cfg.Contribution = *req.Contribution
	}
	if req.Currency != "" {
		cfg.Currency = req.Currency
	}
	if req.Period != nil {
		cfg.Period = *req.Period
	}
	cfg.AlignToPeriodStart = req.Align
	// An explicit empty list is an empty configuration, only a missing one gets the default.
	if req.Instruments != nil {
		cfg.Instruments = req.Instruments.Unique()
	}
	return cfg
}

// SimulateResponse is the response of a simulation request.
type SimulateResponse struct {
	RunID string `json:"run_id"`
	*dca.Report
}

// Simulate runs a simulation.
func (h *Handler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := req.Config()
	cfg.Concurrency = h.concurrency

	runID := uuid.NewString()
	c.Header("X-Run-ID", runID)

	report, err := dca.Run(c.Request.Context(), cfg, h.provider)
	if report != nil {
		for _, w := range report.Warnings {
			log.Printf("run %s: warning: %v", runID, w)
		}
	}
	switch {
	case err == nil:
		c.JSON(http.StatusOK, SimulateResponse{RunID: runID, Report: report})
	case errors.Is(err, dca.ErrEmptyConfiguration), errors.Is(err, dca.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"run_id": runID, "error": err.Error()})
	case errors.Is(err, dca.ErrNoUsableData):
		resp := gin.H{"run_id": runID, "error": err.Error()}
		if report != nil {
			resp["warnings"] = report.Warnings
		}
		c.JSON(http.StatusNotFound, resp)
	default:
		log.Printf("run %s failed: %v", runID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"run_id": runID, "error": err.Error()})
	}
}

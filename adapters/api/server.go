// Package api exposes the dataset analysis platform as a JSON API for the
// dashboard frontend.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/internal/config"
	internaldataset "datalens/internal/dataset"
	"datalens/internal/insights"
	"datalens/ports"
)

// Server wires the HTTP routes to the processing service
type Server struct {
	router    *gin.Engine
	processor *internaldataset.Processor
	datasets  ports.DatasetRepository
	reports   ports.ReportRepository
	insights  *insights.Generator
	cfg       *config.Config
}

// NewServer creates the API server
func NewServer(cfg *config.Config, processor *internaldataset.Processor, datasets ports.DatasetRepository, reports ports.ReportRepository) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:    gin.New(),
		processor: processor,
		datasets:  datasets,
		reports:   reports,
		insights:  insights.NewGenerator(insights.DefaultThresholds()),
		cfg:       cfg,
	}

	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.GET("/datasets", s.handleListDatasets)
		api.POST("/datasets", s.handleUploadDataset)
		api.GET("/datasets/:id", s.handleGetDataset)
		api.DELETE("/datasets/:id", s.handleDeleteDataset)

		api.POST("/datasets/:id/analyze", s.handleAnalyzeDataset)
		api.GET("/datasets/:id/report", s.handleGetReport)
		api.GET("/datasets/:id/insights", s.handleGetInsights)
		api.GET("/datasets/:id/histograms", s.handleGetHistograms)
		api.GET("/datasets/:id/missing-pattern", s.handleGetMissingPattern)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Server.Port)
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

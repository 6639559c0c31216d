package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"datalens/domain/core"
	"datalens/internal/errors"
)

func (s *Server) handleListDatasets(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	datasets, err := s.datasets.List(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[API] Failed to list datasets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve datasets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"datasets": datasets,
		"count":    len(datasets),
	})
}

// handleUploadDataset accepts a multipart upload, stores the file, and runs
// the analysis pipeline synchronously. The response carries both the dataset
// record and the first report.
func (s *Server) handleUploadDataset(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing file upload field 'file'",
		})
		return
	}

	if file.Size > s.cfg.Storage.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "File exceeds the upload size limit",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.UnsupportedFormat(ext).Error(),
		})
		return
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		log.Printf("[API] Failed to create upload dir: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store uploaded file",
		})
		return
	}

	storedPath := filepath.Join(s.cfg.Storage.UploadDir, core.NewID().String()+ext)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		log.Printf("[API] Failed to save upload %s: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store uploaded file",
		})
		return
	}

	targetColumn := c.PostForm("target_column")
	ds, report, err := s.processor.ProcessFile(c.Request.Context(), storedPath, file.Filename, targetColumn)
	if err != nil {
		log.Printf("[API] Failed to process %s: %v", file.Filename, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"dataset": ds,
		"report":  report,
	})
}

func (s *Server) handleGetDataset(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	ds, err := s.datasets.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Dataset not found",
		})
		return
	}

	c.JSON(http.StatusOK, ds)
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	ds, err := s.datasets.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Dataset not found",
		})
		return
	}

	if err := s.datasets.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[API] Failed to delete dataset %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete dataset",
		})
		return
	}
	if ds.FilePath != "" {
		if err := os.Remove(ds.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("[API] Failed to remove stored file %s: %v", ds.FilePath, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handleAnalyzeDataset re-runs the analysis, optionally with a different
// target column passed in the JSON body.
func (s *Server) handleAnalyzeDataset(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	var body struct {
		TargetColumn string `json:"target_column"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request body",
			})
			return
		}
	}

	report, err := s.processor.Reanalyze(c.Request.Context(), id, body.TargetColumn)
	if err != nil {
		log.Printf("[API] Failed to reanalyze dataset %s: %v", id, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	report, err := s.reports.GetLatestForDataset(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No analysis report for this dataset",
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleGetInsights(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	report, err := s.reports.GetLatestForDataset(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No analysis report for this dataset",
		})
		return
	}

	cards := s.insights.Generate(report.Report)
	c.JSON(http.StatusOK, gin.H{
		"insights": cards,
		"count":    len(cards),
	})
}

func (s *Server) handleGetHistograms(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	columns, err := s.processor.LoadColumns(c.Request.Context(), id)
	if err != nil {
		log.Printf("[API] Failed to load columns for %s: %v", id, err)
		c.JSON(statusForError(err), gin.H{
			"error": "Failed to load dataset columns",
		})
		return
	}

	histograms, err := s.processor.Histograms(c.Request.Context(), columns)
	if err != nil {
		log.Printf("[API] Failed to compute histograms for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute histograms",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"histograms": histograms})
}

func (s *Server) handleGetMissingPattern(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}

	columns, err := s.processor.LoadColumns(c.Request.Context(), id)
	if err != nil {
		log.Printf("[API] Failed to load columns for %s: %v", id, err)
		c.JSON(statusForError(err), gin.H{
			"error": "Failed to load dataset columns",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patterns": s.processor.MissingPatterns(columns),
	})
}

func (s *Server) datasetID(c *gin.Context) (core.DatasetID, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid dataset ID",
		})
		return "", false
	}
	return id, true
}

func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeValidationError, errors.CodeInvalidInput,
		errors.CodeShapeMismatch, errors.CodeUnsupportedFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

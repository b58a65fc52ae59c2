package server

import (
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oezhouyou/legal-form-fill/internal/fill"
	"github.com/oezhouyou/legal-form-fill/internal/schema"
	"github.com/oezhouyou/legal-form-fill/internal/store"
)

func (s *Server) health(c *gin.Context) {
	keyStatus := "configured"
	if s.cfg.Vision.APIKey == "" {
		keyStatus = "missing"
	}

	dirStatus := "writable"
	if info, err := os.Stat(s.cfg.Storage.UploadDir); err != nil || !info.IsDir() {
		dirStatus = "unavailable"
	}

	status := "ok"
	if keyStatus != "configured" || dirStatus != "writable" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"checks": gin.H{
			"vision_api_key":   keyStatus,
			"upload_directory": dirStatus,
		},
	})
}

func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	fileID, path, err := s.docs.SaveUpload(header.Filename, contents)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docType := c.DefaultPostForm("doc_type", "auto")
	if docType == "auto" {
		docType, err = s.docs.DetectType(path)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	preview, err := s.docs.PreviewDataURI(path)
	if err != nil {
		s.log.Warn("preview generation failed", zap.String("file_id", fileID), zap.Error(err))
		preview = ""
	}

	if err := s.db.RecordUpload(c.Request.Context(), store.UploadRecord{
		FileID:   fileID,
		Filename: header.Filename,
		DocType:  docType,
	}); err != nil {
		s.log.Warn("failed to record upload", zap.String("file_id", fileID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"file_id":     fileID,
		"filename":    header.Filename,
		"doc_type":    docType,
		"preview_url": preview,
	})
}

type extractRequest struct {
	Files map[string]string `json:"files"`
}

func (s *Server) extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}

	s.log.Info("extraction requested", zap.Int("files", len(req.Files)))

	result, err := s.extractor.Extract(c.Request.Context(), req.Files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) fillForm(c *gin.Context) {
	data := schema.NewFormData()
	if err := c.ShouldBindJSON(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	s.log.Info("form fill requested")
	start := time.Now()

	result, err := s.filler.Fill(c.Request.Context(), data)
	if err != nil {
		s.recordRun(c, store.FillRun{
			Success:     false,
			TotalFields: fill.TotalFields(),
			Errors:      []string{err.Error()},
			DurationMs:  time.Since(start).Milliseconds(),
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.recordRun(c, store.FillRun{
		Success:      result.Success,
		ScreenshotID: result.ScreenshotID,
		FilledFields: result.FilledFields,
		TotalFields:  result.TotalFields,
		Errors:       result.Errors,
		DurationMs:   time.Since(start).Milliseconds(),
	})

	s.log.Info("form fill finished",
		zap.Bool("success", result.Success),
		zap.Int("filled", result.FilledFields),
		zap.Int("total", result.TotalFields),
		zap.Int("errors", len(result.Errors)))
	c.JSON(http.StatusOK, result)
}

func (s *Server) recordRun(c *gin.Context, run store.FillRun) {
	if _, err := s.db.RecordFillRun(c.Request.Context(), run); err != nil {
		s.log.Warn("failed to record fill run", zap.Error(err))
	}
}

func (s *Server) screenshot(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screenshot id"})
		return
	}

	path := fill.ScreenshotPath(s.cfg.Storage.UploadDir, id)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "screenshot not found"})
		return
	}

	c.Header("Content-Type", "image/png")
	c.File(path)
}

func (s *Server) runs(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := s.db.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

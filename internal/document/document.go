// Package document handles uploaded legal documents: persistence, type
// detection, page rasterisation for vision extraction, and preview
// thumbnails.
package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/oezhouyou/legal-form-fill/internal/config"
)

const (
	previewMaxPx = 400
	imageMaxPx   = 2048
)

// Service stores and processes uploaded documents.
type Service struct {
	cfg config.StorageConfig
	log *zap.Logger
}

// NewService creates a document service rooted at the configured upload dir.
func NewService(cfg config.StorageConfig, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, log: log}
}

func pdfConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// SaveUpload validates and persists an uploaded file under a fresh UUID,
// returning the stored file's ID and path.
func (s *Service) SaveUpload(filename string, contents []byte) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extAllowed(ext) {
		return "", "", fmt.Errorf("unsupported file type: %s", ext)
	}

	maxBytes := int64(s.cfg.MaxFileSizeMB) * 1024 * 1024
	if maxBytes > 0 && int64(len(contents)) > maxBytes {
		return "", "", fmt.Errorf("file exceeds %d MB limit", s.cfg.MaxFileSizeMB)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileID := uuid.NewString()
	path := filepath.Join(s.cfg.UploadDir, fileID+ext)
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return "", "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.log.Info("stored upload",
		zap.String("filename", filename),
		zap.String("file_id", fileID),
		zap.Int("bytes", len(contents)))
	return fileID, path, nil
}

// FindFile locates a stored file by its UUID stem.
func (s *Service) FindFile(fileID string) (string, error) {
	entries, err := os.ReadDir(s.cfg.UploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to read upload directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == fileID {
			return filepath.Join(s.cfg.UploadDir, name), nil
		}
	}
	return "", fmt.Errorf("no file with id %s", fileID)
}

// DetectType guesses the document type from the file itself. Multi-page
// PDFs are assumed to be G-28 forms; single-page PDFs and standalone
// images are treated as passport scans.
func (s *Service) DetectType(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return "passport", nil
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to count PDF pages: %w", err)
	}

	docType := "passport"
	if pages > 1 {
		docType = "g28"
	}
	s.log.Info("detected document type",
		zap.String("path", path),
		zap.String("doc_type", docType),
		zap.Int("pages", pages))
	return docType, nil
}

// PageImages renders the document as one PNG per page, each capped at
// 2048px on the longest edge. Standalone images yield a single page.
func (s *Service) PageImages(path string) ([][]byte, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		img, err := loadImageFile(path)
		if err != nil {
			return nil, err
		}
		data, err := encodePNG(scaleToFit(img, imageMaxPx))
		if err != nil {
			return nil, err
		}
		return [][]byte{data}, nil
	}

	return s.pdfPageImages(path, nil)
}

// pdfPageImages extracts embedded page scans from a PDF. Uploaded G-28s
// and passport PDFs are scanned documents, one full-page image per page.
func (s *Service) pdfPageImages(path string, pages []string) ([][]byte, error) {
	tmpDir, err := os.MkdirTemp("", "formfill-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := api.ExtractImagesFile(path, tmpDir, pages, pdfConfig()); err != nil {
		return nil, fmt.Errorf("failed to extract PDF page images: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted images: %w", err)
	}

	// Extraction names files by page number, so lexical order is page order.
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no page images found in %s", filepath.Base(path))
	}

	images := make([][]byte, 0, len(names))
	for _, name := range names {
		img, err := loadImageFile(filepath.Join(tmpDir, name))
		if err != nil {
			return nil, err
		}
		data, err := encodePNG(scaleToFit(img, imageMaxPx))
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}

	s.log.Debug("rendered PDF pages", zap.String("path", path), zap.Int("pages", len(images)))
	return images, nil
}

// PreviewDataURI builds a small base64 PNG thumbnail for the frontend.
func (s *Service) PreviewDataURI(path string) (string, error) {
	var img image.Image
	var err error

	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		pages, perr := s.pdfPageImages(path, []string{"1"})
		if perr != nil {
			return "", perr
		}
		img, _, err = image.Decode(bytes.NewReader(pages[0]))
		if err != nil {
			return "", fmt.Errorf("failed to decode page image: %w", err)
		}
	} else {
		img, err = loadImageFile(path)
		if err != nil {
			return "", err
		}
	}

	data, err := encodePNG(scaleToFit(img, previewMaxPx))
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *Service) extAllowed(ext string) bool {
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

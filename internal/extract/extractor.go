// Package extract turns uploaded legal documents into structured form data
// by sending page images to a vision LLM and parsing its JSON response.
package extract

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/oezhouyou/legal-form-fill/internal/schema"
)

// Document type labels accepted by Extract.
const (
	DocTypePassport = "passport"
	DocTypeG28      = "g28"
)

// DocumentSource locates uploaded files and renders them to page images.
type DocumentSource interface {
	FindFile(fileID string) (string, error)
	PageImages(path string) ([][]byte, error)
}

// Result is the merged outcome of extracting one or more documents.
type Result struct {
	Data       *schema.FormData   `json:"data"`
	Confidence map[string]float64 `json:"confidence"`
	Warnings   []string           `json:"warnings"`
}

// Extractor extracts structured form data from uploaded documents.
type Extractor struct {
	client VisionClient
	docs   DocumentSource
	log    *zap.Logger
}

// NewExtractor wires a vision client to a document source.
func NewExtractor(client VisionClient, docs DocumentSource, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{client: client, docs: docs, log: log}
}

// Extract processes the given files, a map of file ID to document type, and
// merges the per-document results into one record. A failure on one file is
// recorded as a warning and does not abort the others.
func (e *Extractor) Extract(ctx context.Context, files map[string]string) (*Result, error) {
	result := &Result{
		Data:       schema.NewFormData(),
		Confidence: map[string]float64{},
		Warnings:   []string{},
	}

	// Stable processing order, so a passport and G-28 in the same request
	// always merge the same way.
	ids := make([]string, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, fileID := range ids {
		docType := files[fileID]

		path, err := e.docs.FindFile(fileID)
		if err != nil {
			e.log.Warn("uploaded file not found", zap.String("file_id", fileID), zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("File not found: %s", fileID))
			continue
		}

		if err := e.extractOne(ctx, path, docType, result); err != nil {
			e.log.Error("extraction failed",
				zap.String("file_id", fileID),
				zap.String("doc_type", docType),
				zap.Error(err))
			result.Warnings = append(result.Warnings, fmt.Sprintf("Error extracting %s: %v", docType, err))
		}
	}

	e.log.Info("extraction complete",
		zap.Int("files", len(files)),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (e *Extractor) extractOne(ctx context.Context, path, docType string, result *Result) error {
	var prompt string
	switch docType {
	case DocTypePassport:
		prompt = passportPrompt
	case DocTypeG28:
		prompt = g28Prompt
	default:
		return fmt.Errorf("unknown document type: %q", docType)
	}

	images, err := e.docs.PageImages(path)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	e.log.Info("extracting document",
		zap.String("path", path),
		zap.String("doc_type", docType),
		zap.Int("images", len(images)))

	text, err := e.client.ExtractJSON(ctx, images, prompt)
	if err != nil {
		return err
	}

	payload, err := parsePayload(text)
	if err != nil {
		return err
	}

	switch docType {
	case DocTypePassport:
		if err := applySection(payload.Passport, &result.Data.Passport); err != nil {
			return err
		}
		for k, v := range payload.Confidence {
			result.Confidence["passport."+k] = v
		}
	case DocTypeG28:
		if err := applySection(payload.Attorney, &result.Data.Attorney); err != nil {
			return err
		}
		if err := applySection(payload.Eligibility, &result.Data.Eligibility); err != nil {
			return err
		}
		for k, v := range payload.Confidence {
			result.Confidence[k] = v
		}
	}
	result.Warnings = append(result.Warnings, payload.Warnings...)

	return nil
}

package fill

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oezhouyou/legal-form-fill/internal/config"
	"github.com/oezhouyou/legal-form-fill/internal/progress"
	"github.com/oezhouyou/legal-form-fill/internal/schema"
)

// Broadcaster receives progress events during a fill run. Implementations
// must not block; the progress.Hub satisfies this.
type Broadcaster interface {
	Broadcast(progress.Event)
}

// sessionFactory opens a browser page for one fill run. The returned
// closure tears the session down and is called on every exit path.
type sessionFactory func(ctx context.Context, cfg config.FormConfig) (FormPage, func(), error)

// Result summarizes one complete fill invocation.
type Result struct {
	Success      bool     `json:"success"`
	ScreenshotID string   `json:"screenshot_id,omitempty"`
	FilledFields int      `json:"filled_fields"`
	TotalFields  int      `json:"total_fields"`
	Errors       []string `json:"errors"`
}

// Filler owns the browser lifecycle for form filling. Each Fill call uses
// its own browser session; concurrent calls are independent.
type Filler struct {
	cfg        config.FormConfig
	uploadDir  string
	hub        Broadcaster
	log        *zap.Logger
	newSession sessionFactory
}

// NewFiller creates a filler. hub may be nil when no listener transport is
// wired; log may be nil.
func NewFiller(cfg config.FormConfig, uploadDir string, hub Broadcaster, log *zap.Logger) *Filler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Filler{
		cfg:        cfg,
		uploadDir:  uploadDir,
		hub:        hub,
		log:        log,
		newSession: newRodSession,
	}
}

// ScreenshotPath returns the artifact path for a screenshot id inside the
// upload directory.
func ScreenshotPath(uploadDir, id string) string {
	return filepath.Join(uploadDir, fmt.Sprintf("screenshot_%s.png", id))
}

// Fill navigates to the target form and populates every mapped field from
// data. Per-field failures are recorded and never abort the run; only a
// browser launch or initial navigation failure returns an error (and then
// no Result is produced).
func (f *Filler) Fill(ctx context.Context, data *schema.FormData) (*Result, error) {
	total := TotalFields()
	filled := 0
	var errs []string
	start := time.Now()

	report := func(field string, status progress.Status, msg string) {
		if f.hub == nil {
			return
		}
		pct := float64(filled) / float64(total) * 100
		if pct > 100 {
			pct = 100
		}
		f.hub.Broadcast(progress.Event{Field: field, Status: status, Message: msg, Progress: pct})
	}

	page, teardown, err := f.newSession(ctx, f.cfg)
	if err != nil {
		return nil, fmt.Errorf("browser session: %w", err)
	}
	defer teardown()

	f.log.Info("Navigating to target form", zap.String("url", f.cfg.TargetURL))
	if err := page.Navigate(ctx, f.cfg.TargetURL); err != nil {
		return nil, err
	}

	for _, entry := range FieldMap {
		value, present := schema.Resolve(data, entry.Path)
		if !present || value == "" {
			// An unset field is not an error; it is simply not written.
			filled++
			continue
		}

		report(entry.Path, progress.StatusFilling, fmt.Sprintf("Filling %s", entry.Path))
		outcome, err := fillWidget(page, entry, value)
		filled++
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s: %v", entry.Path, err))
			report(entry.Path, progress.StatusError, err.Error())
			f.log.Warn("Error filling field", zap.String("path", entry.Path), zap.Error(err))
		case outcome == OutcomeSkipped:
			report(entry.Path, progress.StatusDone, fmt.Sprintf("Skipped %s", entry.Path))
			f.log.Debug("Skipped incompatible value", zap.String("path", entry.Path))
		default:
			report(entry.Path, progress.StatusDone, fmt.Sprintf("Filled %s", entry.Path))
			f.log.Debug("Filled field", zap.String("path", entry.Path))
		}

		// Throttle against client-side reactivity on JS-heavy forms.
		time.Sleep(f.cfg.FieldDelay())
	}

	for _, group := range CheckboxGroups {
		value, present := schema.Resolve(data, group.Path)
		filled++
		if !present {
			continue
		}

		report(group.Path, progress.StatusFilling, fmt.Sprintf("Filling %s", group.Path))
		if err := fillGroup(page, group, stringify(value)); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", group.Path, err))
			report(group.Path, progress.StatusError, err.Error())
			f.log.Warn("Error filling checkbox group", zap.String("path", group.Path), zap.Error(err))
			continue
		}
		report(group.Path, progress.StatusDone, fmt.Sprintf("Filled %s", group.Path))
		f.log.Debug("Filled checkbox group", zap.String("path", group.Path))
	}

	screenshotID := f.captureScreenshot(page, &errs)
	if errs == nil {
		errs = []string{}
	}

	result := &Result{
		Success:      len(errs) == 0,
		ScreenshotID: screenshotID,
		FilledFields: filled - len(errs),
		TotalFields:  total,
		Errors:       errs,
	}
	f.log.Info("Form fill complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("filled", result.FilledFields),
		zap.Int("total", result.TotalFields),
		zap.Int("errors", len(errs)))
	return result, nil
}

// captureScreenshot writes the full-page screenshot artifact and returns
// its id, or appends to errs and returns "" on failure.
func (f *Filler) captureScreenshot(page FormPage, errs *[]string) string {
	png, err := page.Screenshot()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("screenshot: %v", err))
		return ""
	}

	id := uuid.NewString()
	path := ScreenshotPath(f.uploadDir, id)
	if err := os.MkdirAll(f.uploadDir, 0755); err != nil {
		*errs = append(*errs, fmt.Sprintf("screenshot: %v", err))
		return ""
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		*errs = append(*errs, fmt.Sprintf("screenshot: %v", err))
		return ""
	}
	f.log.Info("Screenshot saved", zap.String("path", path))
	return id
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "formfill.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUploadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordUpload(ctx, UploadRecord{
		FileID:   "abc-123",
		Filename: "passport.png",
		DocType:  "passport",
	}))

	rec, err := s.Upload(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "passport.png", rec.Filename)
	assert.Equal(t, "passport", rec.DocType)
	assert.False(t, rec.UploadedAt.IsZero())
}

func TestUploadNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Upload(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateUploadIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := UploadRecord{FileID: "dup", Filename: "a.pdf", DocType: "g28"}
	require.NoError(t, s.RecordUpload(ctx, rec))
	assert.Error(t, s.RecordUpload(ctx, rec))
}

func TestFillRunHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id1, err := s.RecordFillRun(ctx, FillRun{
		Success:      true,
		ScreenshotID: "shot-1",
		FilledFields: 37,
		TotalFields:  37,
		Errors:       []string{},
		DurationMs:   4200,
	})
	require.NoError(t, err)

	id2, err := s.RecordFillRun(ctx, FillRun{
		Success:      false,
		FilledFields: 35,
		TotalFields:  37,
		Errors:       []string{"#email: element not found", "screenshot: timed out"},
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, id2, runs[0].ID)
	assert.False(t, runs[0].Success)
	assert.Equal(t, []string{"#email: element not found", "screenshot: timed out"}, runs[0].Errors)

	assert.True(t, runs[1].Success)
	assert.Equal(t, "shot-1", runs[1].ScreenshotID)
	assert.Equal(t, int64(4200), runs[1].DurationMs)
	assert.Empty(t, runs[1].Errors)
}

func TestRecentRunsRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.RecordFillRun(ctx, FillRun{Success: true, FilledFields: 37, TotalFields: 37})
		require.NoError(t, err)
	}

	runs, err := s.RecentRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = s.RecentRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 5, "non-positive limit falls back to the default")
}

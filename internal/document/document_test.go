package document

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oezhouyou/legal-form-fill/internal/config"
)

func testService(t *testing.T) *Service {
	t.Helper()
	return NewService(config.StorageConfig{
		UploadDir:         t.TempDir(),
		MaxFileSizeMB:     1,
		AllowedExtensions: []string{".pdf", ".jpg", ".jpeg", ".png"},
	}, nil)
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveUpload(t *testing.T) {
	s := testService(t)

	fileID, path, err := s.SaveUpload("passport.png", makePNG(t, 20, 20))
	require.NoError(t, err)

	_, err = uuid.Parse(fileID)
	require.NoError(t, err, "file id should be a UUID")
	assert.Equal(t, fileID+".png", filepath.Base(path))

	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, stored)
}

func TestSaveUploadNormalizesExtensionCase(t *testing.T) {
	s := testService(t)

	_, path, err := s.SaveUpload("SCAN.PNG", makePNG(t, 10, 10))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"))
}

func TestSaveUploadRejectsUnknownExtension(t *testing.T) {
	s := testService(t)

	_, _, err := s.SaveUpload("notes.docx", []byte("hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestSaveUploadRejectsOversizeFile(t *testing.T) {
	s := testService(t)

	big := make([]byte, 2*1024*1024)
	_, _, err := s.SaveUpload("big.png", big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 1 MB limit")
}

func TestFindFile(t *testing.T) {
	s := testService(t)

	fileID, path, err := s.SaveUpload("doc.jpg", makePNG(t, 10, 10))
	require.NoError(t, err)

	found, err := s.FindFile(fileID)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = s.FindFile("does-not-exist")
	assert.Error(t, err)
}

func TestDetectTypeImageIsPassport(t *testing.T) {
	s := testService(t)

	_, path, err := s.SaveUpload("scan.png", makePNG(t, 10, 10))
	require.NoError(t, err)

	docType, err := s.DetectType(path)
	require.NoError(t, err)
	assert.Equal(t, "passport", docType)
}

func TestPageImagesSingleImage(t *testing.T) {
	s := testService(t)

	_, path, err := s.SaveUpload("scan.png", makePNG(t, 30, 40))
	require.NoError(t, err)

	pages, err := s.PageImages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	img, format, err := image.Decode(bytes.NewReader(pages[0]))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestPageImagesDownscalesLargeImage(t *testing.T) {
	s := testService(t)

	_, path, err := s.SaveUpload("huge.png", makePNG(t, 3000, 1500))
	require.NoError(t, err)

	pages, err := s.PageImages(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	img, _, err := image.Decode(bytes.NewReader(pages[0]))
	require.NoError(t, err)
	assert.Equal(t, 2048, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())
}

func TestPreviewDataURI(t *testing.T) {
	s := testService(t)

	_, path, err := s.SaveUpload("scan.png", makePNG(t, 800, 600))
	require.NoError(t, err)

	uri, err := s.PreviewDataURI(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 400)
	assert.LessOrEqual(t, img.Bounds().Dy(), 400)
}

func TestScaleToFitPassesSmallImagesThrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Equal(t, img, scaleToFit(img, 2048))

	scaled := scaleToFit(img, 40)
	assert.Equal(t, 40, scaled.Bounds().Dx())
	assert.Equal(t, 20, scaled.Bounds().Dy())
}

package builder

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charamzic/azmagall/pkg/models"
	"github.com/charamzic/azmagall/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".png") {
		require.NoError(t, png.Encode(f, img))
		return
	}

	require.NoError(t, jpeg.Encode(f, img, nil))
}

func imageDimensions(t *testing.T, path string) (int, int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)

	return cfg.Width, cfg.Height
}

func newTestBuilder(t *testing.T, outputDir string, thumbnailer services.Thumbnailer) GalleryBuilderService {
	t.Helper()

	renderer, err := services.NewRenderService(services.RenderServiceConfig{})
	require.NoError(t, err)

	if thumbnailer == nil {
		thumbnailer = services.NewThumbnailService(services.ThumbnailServiceConfig{})
	}

	return NewGalleryBuilderService(GalleryBuilderConfig{
		MaxWorkers: 4,
		OutputDir:  outputDir,
		Renderer:   renderer,
		Scanner: services.NewScannerService(services.ScannerServiceConfig{
			Extensions: []string{"jpg", "jpeg", "png"},
		}),
		Thumbnailer: thumbnailer,
		ThumbWidth:  320,
	})
}

type failingThumbnailer struct{}

func (failingThumbnailer) Generate(srcPath, dstPath string, maxWidth int) error {
	return errors.New("no decoder available")
}

type fixedScanner struct {
	files []models.SourceFile
}

func (s fixedScanner) Scan(srcDir string) ([]models.SourceFile, error) {
	return s.files, nil
}

func TestBuildGeneratesGalleryInFilenameOrder(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gallery")

	writeTestImage(t, filepath.Join(srcDir, "A.png"), 400, 200)
	writeTestImage(t, filepath.Join(srcDir, "b.JPG"), 200, 100)

	galleryBuilder := newTestBuilder(t, outDir, nil)

	require.NoError(t, galleryBuilder.Build(srcDir, "Test Gallery"))

	// Originals copied through.
	for _, name := range []string{"A.png", "b.JPG"} {
		_, err := os.Stat(filepath.Join(outDir, "images", name))
		assert.NoError(t, err, name)
	}

	// A.png is wider than 320, so it shrinks; b.JPG passes through.
	width, height := imageDimensions(t, filepath.Join(outDir, "thumbs", "A.png"))
	assert.Equal(t, 320, width)
	assert.Equal(t, 160, height)

	width, height = imageDimensions(t, filepath.Join(outDir, "thumbs", "b.JPG"))
	assert.Equal(t, 200, width)
	assert.Equal(t, 100, height)

	b, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)

	html := string(b)
	first := strings.Index(html, "A.png")
	second := strings.Index(html, "b.JPG")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
	assert.Contains(t, html, "Test Gallery")
}

func TestBuildSanitizesFilenames(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gallery")

	writeTestImage(t, filepath.Join(srcDir, "we?ird.png"), 50, 50)

	galleryBuilder := newTestBuilder(t, outDir, nil)

	require.NoError(t, galleryBuilder.Build(srcDir, "Weird"))

	_, err := os.Stat(filepath.Join(outDir, "images", "we_ird.png"))
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "thumbs", "we_ird.png"))
	assert.NoError(t, err)
}

func TestBuildFallsBackToCopyingTheOriginal(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gallery")

	src := filepath.Join(srcDir, "photo.png")
	writeTestImage(t, src, 400, 200)

	galleryBuilder := newTestBuilder(t, outDir, failingThumbnailer{})

	require.NoError(t, galleryBuilder.Build(srcDir, "Fallback"))

	original, err := os.ReadFile(src)
	require.NoError(t, err)

	thumb, err := os.ReadFile(filepath.Join(outDir, "thumbs", "photo.png"))
	require.NoError(t, err)

	assert.Equal(t, original, thumb)
}

func TestBuildIsIdempotent(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gallery")

	writeTestImage(t, filepath.Join(srcDir, "photo.png"), 400, 200)

	galleryBuilder := newTestBuilder(t, outDir, nil)

	require.NoError(t, galleryBuilder.Build(srcDir, "First"))

	// Existing destinations are left alone on the second run.
	marker := []byte("marker bytes, not an image")
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "images", "photo.png"), marker, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "thumbs", "photo.png"), marker, 0644))

	require.NoError(t, galleryBuilder.Build(srcDir, "Second"))

	b, err := os.ReadFile(filepath.Join(outDir, "images", "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, marker, b)

	b, err = os.ReadFile(filepath.Join(outDir, "thumbs", "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, marker, b)
}

func TestBuildReportsWhenNoSupportedImagesExist(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gallery")

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("x"), 0644))

	galleryBuilder := newTestBuilder(t, outDir, nil)

	err := galleryBuilder.Build(srcDir, "Empty")
	assert.ErrorIs(t, err, models.ErrNoSupportedImages)

	// Nothing gets written for an empty run.
	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildReportsWhenEveryFileFails(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "gallery")

	renderer, err := services.NewRenderService(services.RenderServiceConfig{})
	require.NoError(t, err)

	galleryBuilder := NewGalleryBuilderService(GalleryBuilderConfig{
		MaxWorkers: 2,
		OutputDir:  outDir,
		Renderer:   renderer,
		Scanner: fixedScanner{
			files: []models.SourceFile{
				{Path: filepath.Join(t.TempDir(), "vanished.jpg"), Name: "vanished.jpg"},
			},
		},
		Thumbnailer: services.NewThumbnailService(services.ThumbnailServiceConfig{}),
		ThumbWidth:  320,
	})

	err = galleryBuilder.Build("ignored", "Doomed")
	assert.ErrorIs(t, err, models.ErrNoGalleryItems)

	_, statErr := os.Stat(filepath.Join(outDir, "index.html"))
	assert.True(t, os.IsNotExist(statErr))
}

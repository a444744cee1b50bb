package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alitto/pond/v2"
	"github.com/charamzic/azmagall/pkg/models"
	"github.com/charamzic/azmagall/pkg/services"
)

type GalleryBuilder interface {
	Build(srcDir, title string) error
}

type GalleryBuilderConfig struct {
	MaxWorkers  int
	OutputDir   string
	Renderer    services.Renderer
	Scanner     services.ScannerServicer
	ShutdownCtx context.Context
	Thumbnailer services.Thumbnailer
	ThumbWidth  int
}

type GalleryBuilderService struct {
	maxWorkers  int
	outputDir   string
	renderer    services.Renderer
	scanner     services.ScannerServicer
	shutdownCtx context.Context
	thumbnailer services.Thumbnailer
	thumbWidth  int
}

func NewGalleryBuilderService(config GalleryBuilderConfig) GalleryBuilderService {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 1
	}

	if config.ShutdownCtx == nil {
		config.ShutdownCtx = context.Background()
	}

	return GalleryBuilderService{
		maxWorkers:  config.MaxWorkers,
		outputDir:   config.OutputDir,
		renderer:    config.Renderer,
		scanner:     config.Scanner,
		shutdownCtx: config.ShutdownCtx,
		thumbnailer: config.Thumbnailer,
		thumbWidth:  config.ThumbWidth,
	}
}

/*
Build runs one pass over the source directory: enumerate, copy each
original, generate its thumbnail, then render the gallery artifacts.
Per-file failures are logged and skipped; they never abort the run.
Nothing is written when no candidate files exist.
*/
func (b GalleryBuilderService) Build(srcDir, title string) error {
	var (
		err   error
		files []models.SourceFile
	)

	if files, err = b.scanner.Scan(srcDir); err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w in %s", models.ErrNoSupportedImages, srcDir)
	}

	imagesDir := filepath.Join(b.outputDir, "images")
	thumbsDir := filepath.Join(b.outputDir, "thumbs")

	for _, dir := range []string{imagesDir, thumbsDir} {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory %s: %w", dir, err)
		}
	}

	slog.Info("processing images...", "numImages", len(files), "source", srcDir)

	/*
	 * Each file's copy+thumbnail step is independent, so the work runs on a
	 * bounded pool. Every task writes only its own slot, which preserves the
	 * case-insensitive filename order without any coordination.
	 */
	accepted := make([]string, len(files))

	pool := pond.NewPool(b.maxWorkers, pond.WithContext(b.shutdownCtx))

	for index, file := range files {
		index, file := index, file

		pool.Submit(func() {
			safeName, err := b.processFile(file, imagesDir, thumbsDir)

			if err != nil {
				slog.Error("skipping image", "image", file.Path, "error", err)
				return
			}

			accepted[index] = safeName
			slog.Debug("processed image", "image", file.Path, "name", safeName)
		})
	}

	_ = pool.Stop().Wait()

	gallery := models.Gallery{
		Title: title,
	}

	for _, name := range accepted {
		if name == "" {
			continue
		}

		gallery.Items = append(gallery.Items, models.GalleryItem{Name: name})
	}

	if len(gallery.Items) == 0 {
		return fmt.Errorf("%w from %s", models.ErrNoGalleryItems, srcDir)
	}

	if err = b.renderer.Render(b.outputDir, gallery); err != nil {
		return err
	}

	slog.Info("gallery generated", "dir", b.outputDir, "numItems", len(gallery.Items))
	return nil
}

func (b GalleryBuilderService) processFile(file models.SourceFile, imagesDir, thumbsDir string) (string, error) {
	safeName := services.SanitizeFilename(file.Name)
	dstImage := filepath.Join(imagesDir, safeName)
	dstThumb := filepath.Join(thumbsDir, safeName)

	if !fileExists(dstImage) {
		if err := copyFile(file.Path, dstImage); err != nil {
			return "", fmt.Errorf("error copying original: %w", err)
		}
	}

	if !fileExists(dstThumb) {
		if err := b.thumbnailer.Generate(dstImage, dstThumb, b.thumbWidth); err != nil {
			slog.Warn("thumbnail generation failed, copying original instead", "image", file.Path, "error", err)

			if err = copyFile(dstImage, dstThumb); err != nil {
				return "", fmt.Errorf("error copying fallback thumbnail: %w", err)
			}
		}
	}

	return safeName, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(srcPath, dstPath string) error {
	var (
		err error
		src *os.File
		dst *os.File
	)

	if src, err = os.Open(srcPath); err != nil {
		return fmt.Errorf("error opening %s: %w", srcPath, err)
	}

	defer src.Close()

	if dst, err = os.Create(dstPath); err != nil {
		return fmt.Errorf("error creating %s: %w", dstPath, err)
	}

	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("error copying %s to %s: %w", srcPath, dstPath, err)
	}

	return nil
}

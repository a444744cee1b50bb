package services

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

type Thumbnailer interface {
	Generate(srcPath, dstPath string, maxWidth int) error
}

type ThumbnailServiceConfig struct {
	JpegQuality int
}

type ThumbnailService struct {
	jpegQuality int
}

func NewThumbnailService(config ThumbnailServiceConfig) ThumbnailService {
	if config.JpegQuality <= 0 {
		config.JpegQuality = 85
	}

	return ThumbnailService{
		jpegQuality: config.JpegQuality,
	}
}

/*
Generate writes a version of srcPath to dstPath that is no wider than
maxWidth, preserving aspect ratio. Sources already narrow enough are
re-encoded at their original dimensions. The output format is implied by
dstPath's extension.
*/
func (s ThumbnailService) Generate(srcPath, dstPath string, maxWidth int) error {
	var (
		err error
		img image.Image
	)

	if img, err = imaging.Open(srcPath); err != nil {
		return fmt.Errorf("error decoding image %s: %w", srcPath, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth {
		newHeight := int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
		img = resize.Resize(uint(maxWidth), uint(newHeight), img, resize.Lanczos3)
	}

	if err = imaging.Save(img, dstPath, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		return fmt.Errorf("error encoding thumbnail %s: %w", dstPath, err)
	}

	return nil
}

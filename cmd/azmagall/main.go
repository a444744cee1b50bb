package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charamzic/azmagall/cmd/azmagall/internal/builder"
	"github.com/charamzic/azmagall/cmd/azmagall/internal/configuration"
	"github.com/charamzic/azmagall/pkg/models"
	"github.com/charamzic/azmagall/pkg/services"
	"github.com/spf13/cobra"
)

const defaultTitle = "My Photo Gallery"

var (
	Version string = "development"
	appName string = "azmagall"

	config configuration.Config

	externalThumbs bool

	rootCmd = &cobra.Command{
		Use:          "azmagall <source-directory> [gallery-title]",
		Short:        "Generate a static HTML photo gallery with thumbnails",
		Long:         "azmagall scans a directory for images, copies them into ./gallery/ with reduced-size thumbnails, and renders a static lightbox gallery page.",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&externalThumbs, "external-thumbs", false, "generate thumbnails by shelling out to convert, ffmpeg, or sips instead of resampling in-process")
}

func main() {
	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	if err := rootCmd.Execute(); err != nil {
		/*
		 * An empty run is reported, not treated as a failure.
		 */
		if errors.Is(err, models.ErrNoSupportedImages) || errors.Is(err, models.ErrNoGalleryItems) {
			fmt.Println(err)
			return
		}

		slog.Error("gallery generation failed", "error", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var (
		err         error
		renderer    services.RenderService
		thumbnailer services.Thumbnailer
	)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("outputDir", config.OutputDir),
		slog.Int("thumbWidth", config.ThumbWidth),
		slog.Bool("externalThumbs", externalThumbs),
	)

	srcDir := args[0]
	title := defaultTitle

	if len(args) >= 2 {
		title = args[1]
	}

	/*
	 * Setup services. The external-tool mode accepts the wider extension
	 * set since the tools decode formats the in-process path cannot.
	 */
	extensions := []string{"jpg", "jpeg", "png"}

	if externalThumbs {
		extensions = append(extensions, "gif", "webp")

		thumbnailer = services.NewExternalThumbnailService(services.ExternalThumbnailServiceConfig{
			JpegQuality: config.JpegQuality,
		})
	} else {
		thumbnailer = services.NewThumbnailService(services.ThumbnailServiceConfig{
			JpegQuality: config.JpegQuality,
		})
	}

	scanner := services.NewScannerService(services.ScannerServiceConfig{
		Extensions: extensions,
	})

	if renderer, err = services.NewRenderService(services.RenderServiceConfig{}); err != nil {
		return err
	}

	galleryBuilder := builder.NewGalleryBuilderService(builder.GalleryBuilderConfig{
		MaxWorkers:  config.MaxWorkers,
		OutputDir:   config.OutputDir,
		Renderer:    renderer,
		Scanner:     scanner,
		ShutdownCtx: context.Background(),
		Thumbnailer: thumbnailer,
		ThumbWidth:  config.ThumbWidth,
	})

	if err = galleryBuilder.Build(srcDir, title); err != nil {
		return err
	}

	outDir, err := filepath.Abs(config.OutputDir)

	if err != nil {
		outDir = config.OutputDir
	}

	fmt.Printf("Gallery generated in: %s\n", outDir)
	fmt.Printf("Open %s in a browser or upload the folder to a static host.\n", filepath.Join(config.OutputDir, "index.html"))

	return nil
}

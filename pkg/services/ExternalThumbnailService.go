package services

import (
	"fmt"
	"log/slog"
	"os/exec"
)

/*
CommandRunner executes an external command and reports success or failure
by error. The default runner judges purely on exit status.
*/
type CommandRunner func(name string, args ...string) error

type ExternalThumbnailServiceConfig struct {
	JpegQuality int
	Runner      CommandRunner
}

type ExternalThumbnailService struct {
	jpegQuality int
	runner      CommandRunner
}

func NewExternalThumbnailService(config ExternalThumbnailServiceConfig) ExternalThumbnailService {
	if config.JpegQuality <= 0 {
		config.JpegQuality = 85
	}

	if config.Runner == nil {
		config.Runner = runCommand
	}

	return ExternalThumbnailService{
		jpegQuality: config.JpegQuality,
		runner:      config.Runner,
	}
}

func runCommand(name string, args ...string) error {
	// Stderr is merged into stdout and discarded. Exit status is the only
	// signal. There is no timeout, so a hung tool hangs the run.
	_, err := exec.Command(name, args...).CombinedOutput()
	return err
}

/*
Generate shells out to the first available image tool that can produce a
thumbnail fitting within a maxWidth square. Tools are tried in a fixed
priority order; a launch failure counts the same as a nonzero exit.
*/
func (s ExternalThumbnailService) Generate(srcPath, dstPath string, maxWidth int) error {
	box := fmt.Sprintf("%dx%d", maxWidth, maxWidth)

	attempts := []struct {
		tool string
		args []string
	}{
		{"convert", []string{srcPath, "-resize", box, "-quality", fmt.Sprint(s.jpegQuality), dstPath}},
		{"ffmpeg", []string{"-y", "-i", srcPath, "-vf", fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", maxWidth, maxWidth), dstPath}},
		{"sips", []string{"-Z", fmt.Sprint(maxWidth), srcPath, "--out", dstPath}},
	}

	for _, attempt := range attempts {
		if err := s.runner(attempt.tool, attempt.args...); err != nil {
			slog.Debug("external thumbnail tool failed", "tool", attempt.tool, "image", srcPath, "error", err)
			continue
		}

		return nil
	}

	return fmt.Errorf("no external tool could generate a thumbnail for %s", srcPath)
}

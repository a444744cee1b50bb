package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charamzic/azmagall/pkg/models"
)

type ScannerServicer interface {
	Scan(srcDir string) ([]models.SourceFile, error)
}

type ScannerServiceConfig struct {
	Extensions []string
}

type ScannerService struct {
	extensions []string
}

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|\p{Cc}]+`)

func NewScannerService(config ScannerServiceConfig) ScannerService {
	return ScannerService{
		extensions: config.Extensions,
	}
}

/*
Scan lists the regular files in srcDir whose extension is in the allow-list,
sorted case-insensitively by name.
*/
func (s ScannerService) Scan(srcDir string) ([]models.SourceFile, error) {
	var (
		err     error
		info    os.FileInfo
		entries []os.DirEntry
	)

	if info, err = os.Stat(srcDir); err != nil {
		return nil, fmt.Errorf("source path doesn't exist: %s: %w", srcDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", srcDir)
	}

	if entries, err = os.ReadDir(srcDir); err != nil {
		return nil, fmt.Errorf("error reading source directory %s: %w", srcDir, err)
	}

	result := []models.SourceFile{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !s.hasSupportedExtension(entry.Name()) {
			continue
		}

		result = append(result, models.SourceFile{
			Path: filepath.Join(srcDir, entry.Name()),
			Name: entry.Name(),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})

	return result, nil
}

func (s ScannerService) hasSupportedExtension(name string) bool {
	lower := strings.ToLower(name)

	for _, ext := range s.extensions {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}

	return false
}

/*
SanitizeFilename maps a filename to a filesystem-safe name. Each run of
path separators, shell-special characters, or control characters becomes
a single underscore.
*/
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

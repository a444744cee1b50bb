package services

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/charamzic/azmagall/pkg/models"
)

//go:embed templates
var templateFS embed.FS

type Renderer interface {
	Render(outDir string, gallery models.Gallery) error
}

type RenderServiceConfig struct {
	TemplateName string
}

type RenderService struct {
	indexTemplate *template.Template
}

func NewRenderService(config RenderServiceConfig) (RenderService, error) {
	if config.TemplateName == "" {
		config.TemplateName = "index.html"
	}

	tmpl, err := template.ParseFS(templateFS, "templates/"+config.TemplateName)

	if err != nil {
		return RenderService{}, fmt.Errorf("error parsing gallery template %s: %w", config.TemplateName, err)
	}

	return RenderService{
		indexTemplate: tmpl,
	}, nil
}

/*
Render writes the three gallery artifacts into outDir: the markup page from
the embedded template, and the stylesheet and lightbox script verbatim.
*/
func (s RenderService) Render(outDir string, gallery models.Gallery) error {
	var (
		err error
		b   []byte
		f   *os.File
	)

	for _, asset := range []string{"style.css", "script.js"} {
		if b, err = templateFS.ReadFile("templates/" + asset); err != nil {
			return fmt.Errorf("error reading embedded asset %s: %w", asset, err)
		}

		if err = os.WriteFile(filepath.Join(outDir, asset), b, 0644); err != nil {
			return fmt.Errorf("error writing %s: %w", asset, err)
		}
	}

	if f, err = os.Create(filepath.Join(outDir, "index.html")); err != nil {
		return fmt.Errorf("error creating index.html: %w", err)
	}

	defer f.Close()

	if err = s.indexTemplate.Execute(f, gallery); err != nil {
		return fmt.Errorf("error rendering index.html: %w", err)
	}

	return nil
}

// Package manifest writes a per-run YAML summary of build results: one
// entry per page with artifact byte sizes, plus embed usage instructions.
package manifest

import (
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/embedpack/pkg/pipeline"
	"github.com/dtnitsch/embedpack/pkg/storage"
)

const Filename = "build-manifest.yaml"

// PageSummary describes one page build in the manifest.
type PageSummary struct {
	Page            string `yaml:"page"`
	OutputDir       string `yaml:"output_dir,omitempty"`
	Status          string `yaml:"status"`
	Error           string `yaml:"error,omitempty"`
	BundleBytes     int64  `yaml:"bundle_bytes,omitempty"`
	LinkedBytes     int64  `yaml:"linked_bytes,omitempty"`
	StandaloneBytes int64  `yaml:"standalone_bytes,omitempty"`
}

// Summary is the full build-manifest document.
type Summary struct {
	GeneratedAt string        `yaml:"generated_at"`
	Namespace   string        `yaml:"namespace"`
	Total       int           `yaml:"total"`
	Successful  int           `yaml:"successful"`
	Failed      int           `yaml:"failed"`
	Usage       []string      `yaml:"usage"`
	Pages       []PageSummary `yaml:"pages"`
}

// WriteSummary renders the manifest for one run and saves it under outRoot.
// Returns the path of the written file.
func WriteSummary(outRoot, namespace string, results []*pipeline.PageResult, s *storage.Storage) (string, error) {
	summary := Summary{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Namespace:   namespace,
		Total:       len(results),
		Usage: []string{
			"linked: upload bundle.js next to index.html and embed index.html's body markup",
			"standalone: paste the full contents of standalone.html into the host page's embed block",
		},
	}

	for _, res := range results {
		page := PageSummary{Page: res.Page, OutputDir: res.OutDir}
		if res.Err != nil {
			summary.Failed++
			page.Status = "failed"
			page.Error = res.Err.Error()
		} else {
			summary.Successful++
			page.Status = "success"
			page.BundleBytes = res.BundleBytes
			page.LinkedBytes = res.LinkedBytes
			page.StandaloneBytes = res.StandaloneBytes
		}
		summary.Pages = append(summary.Pages, page)
	}

	data, err := yaml.Marshal(&summary)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := s.EnsureDir(outRoot); err != nil {
		return "", err
	}
	path := filepath.Join(outRoot, Filename)
	if err := s.SaveFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

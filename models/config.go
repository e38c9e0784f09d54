// Package models defines data structures for configuration.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuildConfig holds runtime configuration for a build run. Values come from
// CLI flags, optionally backfilled from an embedpack.yaml in the working
// directory.
type BuildConfig struct {
	// Page is the input HTML page (single-page mode).
	Page string
	// OutDir is the output directory root.
	OutDir string
	// Namespace is the prefix applied to every identifier. Fixed for the
	// whole run.
	Namespace string
	// All enables batch mode over the pages directory.
	All bool
	// PagesDir is the batch-mode discovery root.
	PagesDir string
}

// Validate reports configuration errors. These are fatal and must surface
// before any I/O mutation.
func (c *BuildConfig) Validate() error {
	if c.Namespace == "" {
		return errors.New("a namespace is required (--namespace)")
	}
	if c.OutDir == "" {
		return errors.New("an output directory is required (--out)")
	}
	if !c.All && c.Page == "" {
		return errors.New("an input page is required (--page), or use --all for batch mode")
	}
	return nil
}

// FileDefaults are optional defaults loaded from embedpack.yaml.
type FileDefaults struct {
	Namespace string `yaml:"namespace"`
	OutDir    string `yaml:"out"`
	PagesDir  string `yaml:"pages_dir"`
}

// LoadDefaults reads defaults from path. A missing file is not an error.
func LoadDefaults(path string) (*FileDefaults, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileDefaults{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var d FileDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &d, nil
}

// ApplyDefaults backfills unset config fields from file defaults.
func (c *BuildConfig) ApplyDefaults(d *FileDefaults) {
	if c.Namespace == "" {
		c.Namespace = d.Namespace
	}
	if c.OutDir == "" {
		c.OutDir = d.OutDir
	}
	if c.PagesDir == "" {
		c.PagesDir = d.PagesDir
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
}

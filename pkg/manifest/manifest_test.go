package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/embedpack/pkg/pipeline"
	"github.com/dtnitsch/embedpack/pkg/storage"
)

func TestWriteSummary(t *testing.T) {
	outRoot := t.TempDir()
	results := []*pipeline.PageResult{
		{
			Page:            "pages/alpha/index.html",
			OutDir:          filepath.Join(outRoot, "alpha"),
			BundleBytes:     1024,
			LinkedBytes:     256,
			StandaloneBytes: 1280,
		},
		{
			Page: "pages/broken/index.html",
			Err:  errors.New("esbuild failed: unresolved import"),
		},
	}

	path, err := WriteSummary(outRoot, "acme-", results, &storage.Storage{})
	if err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}

	var got Summary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}

	if got.Namespace != "acme-" {
		t.Errorf("Namespace = %q, want acme-", got.Namespace)
	}
	if got.Total != 2 || got.Successful != 1 || got.Failed != 1 {
		t.Errorf("counts = total %d / ok %d / failed %d, want 2/1/1", got.Total, got.Successful, got.Failed)
	}
	if len(got.Pages) != 2 {
		t.Fatalf("Pages = %d entries, want 2", len(got.Pages))
	}
	if got.Pages[0].Status != "success" || got.Pages[0].BundleBytes != 1024 {
		t.Errorf("first page summary = %+v", got.Pages[0])
	}
	if got.Pages[1].Status != "failed" || got.Pages[1].Error == "" {
		t.Errorf("second page summary = %+v", got.Pages[1])
	}
	if len(got.Usage) == 0 {
		t.Error("manifest missing usage instructions")
	}
}

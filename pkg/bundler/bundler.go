// Package bundler invokes esbuild to compile a synthetic entry point into
// one minified, self-invoking script targeting an evergreen browser
// baseline.
package bundler

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Result is the output of one bundling run, held in memory: the pipeline
// owns all file writes so that no partial artifacts ever reach disk.
type Result struct {
	Script    []byte
	SourceMap []byte
}

type Service struct{}

// Bundle compiles entryPath into a single script. outfile only names the
// output (it determines the paths esbuild reports and the source-map
// reference); nothing is written here.
func (Service) Bundle(entryPath, outfile string) (*Result, error) {
	build := api.Build(api.BuildOptions{
		EntryPoints:       []string{entryPath},
		Outfile:           outfile,
		Bundle:            true,
		Write:             false,
		Format:            api.FormatIIFE,
		Target:            api.ES2020,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Sourcemap:         api.SourceMapLinked,
		LogLevel:          api.LogLevelSilent,
	})

	if len(build.Errors) > 0 {
		msgs := api.FormatMessages(build.Errors, api.FormatMessagesOptions{
			Kind: api.ErrorMessage,
		})
		return nil, fmt.Errorf("esbuild failed: %s", strings.TrimSpace(strings.Join(msgs, "")))
	}

	res := &Result{}
	for _, f := range build.OutputFiles {
		if strings.HasSuffix(f.Path, ".map") {
			res.SourceMap = f.Contents
		} else {
			res.Script = f.Contents
		}
	}
	if res.Script == nil {
		return nil, fmt.Errorf("esbuild produced no script output for %s", entryPath)
	}
	return res, nil
}

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gcsim/internal/config"
	"github.com/specialistvlad/gcsim/internal/ctxlog"
	"github.com/specialistvlad/gcsim/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL scenario loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parsedFile is one decoded file waiting for translation.
type parsedFile struct {
	path string
	root fileRoot
}

// Load orchestrates the entire HCL scenario loading process. All files are
// parsed before any expression is evaluated so that objects declared in one
// file can be referenced from another.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl scenario files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	files := make([]*parsedFile, 0, len(hclFiles))
	for _, path := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		pf, err := decodeFile(path, hclFile)
		if err != nil {
			return nil, err
		}
		files = append(files, pf)
	}

	return l.translate(ctx, files)
}

// LoadSource parses a single in-memory scenario.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	ctxlog.FromContext(ctx).Debug("HCL loader started from source.", "filename", filename, "bytes", len(src))

	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	pf, err := decodeFile(filename, hclFile)
	if err != nil {
		return nil, err
	}
	return l.translate(ctx, []*parsedFile{pf})
}

func decodeFile(path string, file *hcl.File) (*parsedFile, error) {
	pf := &parsedFile{path: path}
	if diags := gohcl.DecodeBody(file.Body, nil, &pf.root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return pf, nil
}

// findAllHCLFiles returns every .hcl file under the given paths.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, fmt.Errorf("error accessing scenario path: %w", err)
	}
	return files, nil
}

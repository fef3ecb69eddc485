package inspector

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/viant/methodoc/inspector/golang"
	"github.com/viant/methodoc/method"
)

// Factory creates implementation sources for source locations
type Factory struct {
	config *golang.Config
	opts   []golang.Option
	goTool func() bool
}

// NewFactory creates a new factory with the given config
func NewFactory(config *golang.Config, opts ...golang.Option) *Factory {
	if config == nil {
		config = golang.DefaultConfig()
	}
	return &Factory{config: config, opts: opts, goTool: hasGoTool}
}

func hasGoTool() bool {
	_, err := exec.LookPath("go")
	return err == nil
}

// Source returns the implementation source of location: a single Go file, a package directory,
// or a module root loaded with the go tool when available
func (f *Factory) Source(ctx context.Context, location string) (method.Source, error) {
	fileInfo, err := os.Stat(location)
	if err != nil {
		return nil, err
	}
	inspector := golang.NewInspector(f.config, f.opts...)
	if !fileInfo.IsDir() {
		if ext := strings.ToLower(filepath.Ext(location)); ext != ".go" {
			return nil, fmt.Errorf("unsupported file type: %s", ext)
		}
		return asSource(inspector.InspectFile(ctx, location))
	}
	if _, err := os.Stat(filepath.Join(location, "go.mod")); err == nil && f.goTool() {
		return asSource(inspector.Load(ctx, location, "./..."))
	}
	return asSource(inspector.InspectDir(ctx, location))
}

func asSource(registry *golang.Registry, err error) (method.Source, error) {
	if err != nil {
		return nil, err
	}
	return registry, nil
}

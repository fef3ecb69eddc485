package golang

import (
	"context"
	"fmt"

	"golang.org/x/tools/go/packages"
)

// LoadMode is the go/packages load mode required to build a registry
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Load builds a registry from the packages matched by patterns, resolved in dir with the go tool
func (i *Inspector) Load(ctx context.Context, dir string, patterns ...string) (*Registry, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
		Tests:   !i.config.SkipTests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages %v: %w", patterns, err)
	}
	registry := newRegistry()
	declared := map[string]bool{}
	failures := 0
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			failures++
			i.logger.Debug("package error", "package", pkg.PkgPath, "error", pkgErr.Error())
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			continue
		}
		// test variants repeat the declarations of the package under test
		var implementations []*implementation
		for _, impl := range i.scan(pkg.Fset, pkg.Types, pkg.TypesInfo, pkg.Syntax) {
			key := fmt.Sprintf("%s:%s:%d:%s", impl.record.Module, impl.record.File, impl.record.Line, impl.record.Name)
			if declared[key] {
				continue
			}
			declared[key] = true
			implementations = append(implementations, impl)
		}
		registry.add(implementations)
	}
	if len(registry.names) == 0 && failures > 0 {
		return nil, fmt.Errorf("failed to load packages %v: %d errors", patterns, failures)
	}
	return registry, nil
}

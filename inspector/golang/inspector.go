package golang

import (
	"context"
	"fmt"
	"go/ast"
	"go/build"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/methodoc/inspector/repository"
)

// Inspector type-checks Go sources and builds implementation registries
type Inspector struct {
	config   *Config
	detector *repository.Detector
	logger   *slog.Logger
	goroot   string
}

// Option configures an Inspector
type Option func(i *Inspector)

// WithLogger sets the inspector logger
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithGOROOT sets the toolchain root used to recognise standard library files
func WithGOROOT(goroot string) Option {
	return func(i *Inspector) {
		i.goroot = goroot
	}
}

// WithDetector sets the detector used to find the enclosing module
func WithDetector(detector *repository.Detector) Option {
	return func(i *Inspector) {
		if detector != nil {
			i.detector = detector
		}
	}
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *Config, opts ...Option) *Inspector {
	if config == nil {
		config = DefaultConfig()
	}
	ret := &Inspector{
		config: config,
		logger: slog.Default(),
		goroot: build.Default.GOROOT,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.detector == nil {
		ret.detector = repository.New()
	}
	return ret
}

// InspectSource parses and type-checks a single file of package importPath
func (i *Inspector) InspectSource(importPath, filename string, src []byte) (*Registry, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	registry := newRegistry()
	pkg, info := i.check(fset, importPath, []*ast.File{file})
	registry.add(i.scan(fset, pkg, info, []*ast.File{file}))
	return registry, nil
}

// InspectFile parses and type-checks a single Go file; the import path is derived from the enclosing go.mod
func (i *Inspector) InspectFile(ctx context.Context, filename string) (*Registry, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", absPath, err)
	}
	importPath, err := i.importPath(ctx, filepath.Dir(absPath))
	if err != nil {
		return nil, err
	}
	return i.InspectSource(importPath, absPath, src)
}

// importPath returns the import path of the package in the absolute dir, or its base name outside a module
func (i *Inspector) importPath(ctx context.Context, dir string) (string, error) {
	module, err := i.detector.Module(ctx, dir)
	if err != nil {
		i.logger.Debug("no module for package", "dir", dir, "error", err)
		return filepath.Base(dir), nil
	}
	return module.ImportPath(dir)
}

// InspectDir parses and type-checks the package in dir; the import path is derived from the enclosing go.mod
func (i *Inspector) InspectDir(ctx context.Context, dir string) (*Registry, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	importPath, err := i.importPath(ctx, absPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	fset := token.NewFileSet()
	filesByPackage := map[string][]*ast.File{}
	var packageNames []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if i.config.SkipTests && strings.HasSuffix(name, "_test.go") {
			continue
		}
		filename := filepath.Join(absPath, name)
		file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
		}
		pkgName := file.Name.Name
		if _, ok := filesByPackage[pkgName]; !ok {
			packageNames = append(packageNames, pkgName)
		}
		filesByPackage[pkgName] = append(filesByPackage[pkgName], file)
	}
	if len(packageNames) == 0 {
		return nil, fmt.Errorf("no Go files found in package: %s", dir)
	}
	sort.Strings(packageNames)

	registry := newRegistry()
	for _, pkgName := range packageNames {
		pkgPath := importPath
		if strings.HasSuffix(pkgName, "_test") {
			pkgPath += "_test"
		}
		files := filesByPackage[pkgName]
		pkg, info := i.check(fset, pkgPath, files)
		registry.add(i.scan(fset, pkg, info, files))
	}
	return registry, nil
}

// check type-checks files; type errors are not fatal, partial information is kept
func (i *Inspector) check(fset *token.FileSet, importPath string, files []*ast.File) (*types.Package, *types.Info) {
	info := &types.Info{
		Defs: make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			i.logger.Debug("type checking error", "package", importPath, "error", err)
		},
	}
	pkg, _ := conf.Check(importPath, fset, files, info)
	return pkg, info
}

// scan converts function declarations into implementations, in declaration order
func (i *Inspector) scan(fset *token.FileSet, pkg *types.Package, info *types.Info, files []*ast.File) []*implementation {
	var result []*implementation
	for _, file := range files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if !i.config.IncludeUnexported && !funcDecl.Name.IsExported() {
				continue
			}
			fn, ok := info.Defs[funcDecl.Name].(*types.Func)
			if !ok {
				continue
			}
			if impl := i.implementation(fset, pkg, fn, funcDecl); impl != nil {
				result = append(result, impl)
			}
		}
	}
	return result
}

func (i *Inspector) implementation(fset *token.FileSet, pkg *types.Package, fn *types.Func, funcDecl *ast.FuncDecl) *implementation {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return nil
	}
	position := fset.Position(funcDecl.Name.Pos())
	record := newRecord(fn.Name(), sig, pkg)
	record.File = i.sourcePath(position.Filename)
	record.Line = position.Line
	return &implementation{record: record, fset: fset, pkg: pkg, signature: sig}
}

// sourcePath returns standard library files relative to $GOROOT/src
func (i *Inspector) sourcePath(filename string) string {
	if i.goroot == "" || filename == "" {
		return filename
	}
	srcRoot := filepath.Join(i.goroot, "src")
	relPath, err := filepath.Rel(srcRoot, filename)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return filename
	}
	return filepath.ToSlash(relPath)
}

package linker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/viant/methodoc/inspector/repository"
)

// Linker resolves browsable source URLs for defining locations
type Linker struct {
	config   *Config
	detector *repository.Detector
	logger   *slog.Logger
}

// Option configures a Linker
type Option func(l *Linker)

// WithLogger sets the linker logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linker) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDetector sets the checkout detector
func WithDetector(detector *repository.Detector) Option {
	return func(l *Linker) {
		if detector != nil {
			l.detector = detector
		}
	}
}

// New creates a linker, a nil config uses DefaultConfig
func New(config *Config, opts ...Option) *Linker {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	cfg.init()
	ret := &Linker{config: &cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.detector == nil {
		ret.detector = repository.New(repository.WithCeilings(cfg.Ceilings...))
	}
	return ret
}

// URL returns the source URL of module file line, or an empty string when none can be resolved
func (l *Linker) URL(module, file string, line int) string {
	return l.Resolve(module, file, line).URL
}

// Resolve returns the source link of module file line. Resolution never fails: every
// metadata problem yields an Unavailable link.
func (l *Linker) Resolve(module, file string, line int) Link {
	return l.ResolveContext(context.Background(), module, file, line)
}

// ResolveContext is Resolve with a context passed to checkout metadata reads
func (l *Linker) ResolveContext(ctx context.Context, module, file string, line int) Link {
	switch l.classify(module, file) {
	case StandardLibrary:
		return l.stdlibLink(file, line)
	case LocalVersionControlled:
		return l.checkoutLink(ctx, file, line)
	}
	return unavailable
}

func (l *Linker) classify(module, file string) Origin {
	if file == "" {
		return Unavailable
	}
	if !filepath.IsAbs(file) && IsStandard(module) {
		return StandardLibrary
	}
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		return LocalVersionControlled
	}
	l.degrade(file, "file does not exist")
	return Unavailable
}

func (l *Linker) stdlibLink(file string, line int) Link {
	ref := l.config.Commit
	if ref == "" {
		ref = l.config.Release
	}
	if ref == "" {
		l.degrade(file, "no toolchain release or commit")
		return unavailable
	}
	file = strings.TrimPrefix(filepath.ToSlash(file), "./")
	URL := l.config.StdlibURL + "/tree/" + ref + "/src/" + file + "#L" + strconv.Itoa(line)
	return Link{URL: URL, Origin: StandardLibrary}
}

func (l *Linker) checkoutLink(ctx context.Context, file string, line int) Link {
	checkout, err := l.detector.Checkout(ctx, file)
	if err != nil {
		l.degrade(file, "no checkout", "error", err)
		return unavailable
	}
	host, slug := l.config.Host, strings.Trim(l.config.Repository, "/")
	if origin, err := l.detector.Origin(ctx, checkout); err == nil {
		if remote, ok := repository.ParseRemote(origin); ok {
			host, slug = remote.Host, remote.Slug
		} else {
			l.logger.Debug("unrecognized remote", "file", file, "remote", origin)
		}
	}
	if slug == "" {
		l.degrade(file, "no repository identifier")
		return unavailable
	}
	commit, err := l.detector.Head(ctx, checkout)
	if err != nil {
		l.degrade(file, "no head commit", "error", err)
		return unavailable
	}
	relPath, ok := relativePath(checkout.Root, file)
	if !ok {
		l.degrade(file, "file outside checkout", "root", checkout.Root)
		return unavailable
	}
	URL := host + "/" + slug + "/tree/" + commit + "/" + relPath + "#L" + strconv.Itoa(line)
	return Link{URL: URL, Origin: LocalVersionControlled}
}

func (l *Linker) degrade(file, reason string, args ...any) {
	l.logger.Debug("source link unavailable", append([]any{"file", file, "reason", reason}, args...)...)
}

// relativePath returns the slash separated path of file within root, both symlink resolved
func relativePath(root, file string) (string, bool) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}
	realFile, err := filepath.EvalSymlinks(absFile)
	if err != nil {
		return "", false
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", false
	}
	relPath, err := filepath.Rel(realRoot, realFile)
	if err != nil {
		return "", false
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." || relPath == ".." || strings.HasPrefix(relPath, "../") {
		return "", false
	}
	return relPath, true
}

// IsStandard reports whether module is a standard library import path
func IsStandard(module string) bool {
	if module == "" {
		return false
	}
	elem, _, _ := strings.Cut(module, "/")
	return !strings.Contains(elem, ".") && elem != "command-line-arguments"
}

package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

var (
	// ErrNotFound is returned when no checkout or module encloses a path
	ErrNotFound = errors.New("not found")
	// ErrNoRemote is returned when the checkout has no origin remote
	ErrNoRemote = errors.New("no origin remote")
)

var hashExpr = regexp.MustCompile(`^[0-9a-f]{40}([0-9a-f]{24})?$`)

// Detector locates checkouts and reads their metadata
type Detector struct {
	fs       afs.Service
	ceilings []string
}

// Option configures a Detector
type Option func(d *Detector)

// WithCeilings stops the upward search before entering any of the supplied directories
func WithCeilings(dirs ...string) Option {
	return func(d *Detector) {
		for _, dir := range dirs {
			if dir == "" {
				continue
			}
			if abs, err := filepath.Abs(dir); err == nil {
				d.ceilings = append(d.ceilings, abs)
			}
		}
	}
}

// WithFS sets the storage service used to read metadata files
func WithFS(fs afs.Service) Option {
	return func(d *Detector) {
		d.fs = fs
	}
}

// New creates a detector
func New(opts ...Option) *Detector {
	ret := &Detector{fs: afs.New()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Checkout finds the working copy enclosing filePath, searching upward from its directory
func (d *Detector) Checkout(ctx context.Context, filePath string) (*Checkout, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}
	dir := startDir
	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			if info.IsDir() {
				return &Checkout{Root: dir, GitDir: gitPath, CommonDir: gitPath}, nil
			}
			return d.linkedCheckout(ctx, dir, gitPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir || d.isCeiling(parent) {
			break
		}
		dir = parent
	}
	return nil, fmt.Errorf("checkout for %s: %w", filePath, ErrNotFound)
}

func (d *Detector) isCeiling(dir string) bool {
	for _, ceiling := range d.ceilings {
		if ceiling == dir {
			return true
		}
	}
	return false
}

// linkedCheckout resolves a .git file ("gitdir: <path>") used by worktrees and submodules
func (d *Detector) linkedCheckout(ctx context.Context, root, gitFile string) (*Checkout, error) {
	content, err := d.fs.DownloadWithURL(ctx, gitFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gitFile, err)
	}
	line := strings.TrimSpace(string(content))
	if !strings.HasPrefix(line, "gitdir:") {
		return nil, fmt.Errorf("invalid git file %s", gitFile)
	}
	gitDir := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(root, gitDir)
	}
	ret := &Checkout{Root: root, GitDir: gitDir, CommonDir: gitDir}
	if common, err := d.fs.DownloadWithURL(ctx, filepath.Join(gitDir, "commondir")); err == nil {
		commonDir := strings.TrimSpace(string(common))
		if !filepath.IsAbs(commonDir) {
			commonDir = filepath.Join(gitDir, commonDir)
		}
		ret.CommonDir = filepath.Clean(commonDir)
	}
	return ret, nil
}

// Origin returns the URL of the origin remote
func (d *Detector) Origin(ctx context.Context, checkout *Checkout) (string, error) {
	configPath := filepath.Join(checkout.CommonDir, "config")
	content, err := d.fs.DownloadWithURL(ctx, configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", configPath, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' {
			foundRemote = isOriginSection(line)
			continue
		}
		if !foundRemote {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "url") {
			if value = strings.Trim(strings.TrimSpace(value), `"`); value != "" {
				return value, nil
			}
		}
	}
	return "", ErrNoRemote
}

func isOriginSection(line string) bool {
	section := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	name, sub, ok := strings.Cut(section, " ")
	if !ok || !strings.EqualFold(name, "remote") {
		return false
	}
	return strings.Trim(strings.TrimSpace(sub), `"`) == "origin"
}

// Head returns the commit checked out in the working copy
func (d *Detector) Head(ctx context.Context, checkout *Checkout) (string, error) {
	headPath := filepath.Join(checkout.GitDir, "HEAD")
	content, err := d.fs.DownloadWithURL(ctx, headPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", headPath, err)
	}
	head := strings.TrimSpace(string(content))
	if !strings.HasPrefix(head, "ref:") {
		if hashExpr.MatchString(head) {
			return head, nil
		}
		return "", fmt.Errorf("invalid HEAD %q", head)
	}
	return d.resolveRef(ctx, checkout, strings.TrimSpace(strings.TrimPrefix(head, "ref:")))
}

func (d *Detector) resolveRef(ctx context.Context, checkout *Checkout, ref string) (string, error) {
	for _, dir := range []string{checkout.GitDir, checkout.CommonDir} {
		if content, err := d.fs.DownloadWithURL(ctx, filepath.Join(dir, filepath.FromSlash(ref))); err == nil {
			if hash := strings.TrimSpace(string(content)); hashExpr.MatchString(hash) {
				return hash, nil
			}
		}
	}
	packedPath := filepath.Join(checkout.CommonDir, "packed-refs")
	content, err := d.fs.DownloadWithURL(ctx, packedPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		hash, name, ok := strings.Cut(line, " ")
		if ok && name == ref && hashExpr.MatchString(hash) {
			return hash, nil
		}
	}
	return "", fmt.Errorf("failed to resolve %s: %w", ref, ErrNotFound)
}

// Module finds the Go module enclosing dir
func (d *Detector) Module(ctx context.Context, dir string) (*Module, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for current := absPath; ; {
		goModPath := filepath.Join(current, "go.mod")
		if content, err := d.fs.DownloadWithURL(ctx, goModPath); err == nil {
			if modulePath := modfile.ModulePath(content); modulePath != "" {
				return &Module{Path: modulePath, Root: current}, nil
			}
			return nil, fmt.Errorf("invalid module file %s", goModPath)
		}
		parent := filepath.Dir(current)
		if parent == current || d.isCeiling(parent) {
			break
		}
		current = parent
	}
	return nil, fmt.Errorf("module for %s: %w", dir, ErrNotFound)
}

// ImportPath returns the import path of the package in dir
func (m *Module) ImportPath(dir string) (string, error) {
	relPath, err := filepath.Rel(m.Root, dir)
	if err != nil {
		return "", err
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		return m.Path, nil
	}
	if strings.HasPrefix(relPath, "../") || relPath == ".." {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Root)
	}
	return m.Path + "/" + relPath, nil
}

package linker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	// RepositoryEnv carries the owner/repository identifier in CI builds
	RepositoryEnv = "GITHUB_REPOSITORY"

	defaultHost      = "https://github.com"
	defaultStdlibURL = "https://github.com/golang/go"
)

// Config represents linker settings
type Config struct {
	Host       string   `yaml:"host"`                 // Hosting site used with the fallback repository
	Repository string   `yaml:"repository,omitempty"` // Fallback owner/repository identifier
	StdlibURL  string   `yaml:"stdlibURL"`            // Standard library source repository
	Release    string   `yaml:"release,omitempty"`    // Runtime release tag, e.g. go1.23.4
	Commit     string   `yaml:"commit,omitempty"`     // Runtime build commit, preferred over Release
	Ceilings   []string `yaml:"ceilings,omitempty"`   // Directories the checkout search never enters
}

// DefaultConfig returns a config describing the running toolchain
func DefaultConfig() *Config {
	release, commit := runtimeBuild(runtime.Version())
	return &Config{
		Host:      defaultHost,
		StdlibURL: defaultStdlibURL,
		Release:   release,
		Commit:    commit,
	}
}

// ConfigFromEnv returns the default config with the fallback repository taken from lookup,
// typically os.LookupEnv
func ConfigFromEnv(lookup func(key string) (string, bool)) *Config {
	ret := DefaultConfig()
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if value, ok := lookup(RepositoryEnv); ok {
		ret.Repository = strings.TrimSpace(value)
	}
	return ret
}

// LoadConfig reads a YAML config from URL, unset fields keep their defaults. Release and
// Commit are taken together: setting either one drops the running toolchain build.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	ret := &Config{}
	if err = yaml.Unmarshal(content, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	defaults := DefaultConfig()
	if ret.Host == "" {
		ret.Host = defaults.Host
	}
	if ret.StdlibURL == "" {
		ret.StdlibURL = defaults.StdlibURL
	}
	if ret.Release == "" && ret.Commit == "" {
		ret.Release, ret.Commit = defaults.Release, defaults.Commit
	}
	return ret, nil
}

func (c *Config) init() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.StdlibURL == "" {
		c.StdlibURL = defaultStdlibURL
	}
	c.Host = strings.TrimSuffix(c.Host, "/")
	c.StdlibURL = strings.TrimSuffix(c.StdlibURL, "/")
	if c.Release == "" && c.Commit == "" {
		c.Release, c.Commit = runtimeBuild(runtime.Version())
	}
}

// runtimeBuild splits a toolchain version into a release tag and a commit; release builds
// ("go1.23.4") carry no commit, development builds ("devel go1.24-8c3ae2a4 ...") no release
func runtimeBuild(version string) (release, commit string) {
	if !strings.HasPrefix(version, "devel") {
		if fields := strings.Fields(version); len(fields) > 0 {
			return fields[0], ""
		}
		return "", ""
	}
	fields := strings.Fields(strings.TrimPrefix(version, "devel"))
	if len(fields) == 0 {
		return "", ""
	}
	token := strings.TrimPrefix(fields[0], "+")
	if _, hash, ok := strings.Cut(token, "-"); ok {
		return "", hash
	}
	if hashPrefix(token) {
		return "", token
	}
	return "", ""
}

func hashPrefix(s string) bool {
	if len(s) < 7 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

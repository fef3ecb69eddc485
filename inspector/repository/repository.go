package repository

// Checkout represents a local git working copy
type Checkout struct {
	Root      string // Absolute path to the working copy root
	GitDir    string // Repository metadata directory (HEAD, refs)
	CommonDir string // Shared metadata directory (config, packed refs), equals GitDir outside worktrees
}

// Remote represents a hosted repository parsed from a remote URL
type Remote struct {
	Host string // Hosting site base URL, e.g. https://github.com
	Slug string // owner/repository identifier
}

// Module represents the Go module enclosing a directory
type Module struct {
	Path string // Module path declared in go.mod
	Root string // Directory containing go.mod
}

package golang

// Config controls which declarations become implementation records
type Config struct {
	IncludeUnexported bool
	SkipTests         bool
}

// DefaultConfig returns the default inspector config
func DefaultConfig() *Config {
	return &Config{
		IncludeUnexported: true,
		SkipTests:         true,
	}
}

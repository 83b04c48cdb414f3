package config

import "context"

// Loader is the interface for a format-specific scenario loader.
type Loader interface {
	// Load reads every scenario file found under the given paths and merges
	// them, in discovery order, into a single format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// LoadSource parses a single in-memory scenario. The filename is only
	// used in diagnostics.
	LoadSource(ctx context.Context, filename string, src []byte) (*Model, error)
}

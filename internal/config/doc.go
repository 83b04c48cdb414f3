// Package config defines the format-agnostic scenario model for the
// simulator, along with the Loader interface for reading scenarios from
// various sources.
//
// The `config.Model` is the single source of truth for the `engine`
// package. Concrete implementations of the interface, such as for HCL, are
// provided in separate packages.
package config

// Package store persists asset files so that a directory collected once can be
// served later without touching the file system.
package store

import (
	"fmt"

	"github.com/always-cache/assets"
)

// Provider is an interface for an asset store.
// It stores and retrieves files by route.
//
// Implementations must be thread-safe!
type Provider interface {
	// All returns all stored files, ordered by route.
	All() ([]assets.File, error)
	// Get returns the file stored under the given route, if it exists.
	// It also returns a boolean indicating whether retrieval was successful.
	Get(route string) (assets.File, bool, error)
	// Put stores the given file under its route, replacing any existing file.
	Put(f assets.File) error
	// Purge removes the file stored under the given route.
	Purge(route string) error
	// Has checks if a file is stored under the given route.
	Has(route string) bool
}

// Load builds an asset table from everything in the store.
func Load(p Provider) (*assets.Table, error) {
	files, err := p.All()
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	return assets.NewTable(files...)
}

// Save stores all files, stopping at the first error.
func Save(p Provider, files []assets.File) error {
	for _, f := range files {
		if err := p.Put(f); err != nil {
			return fmt.Errorf("saving %s: %w", f.Route, err)
		}
	}
	return nil
}

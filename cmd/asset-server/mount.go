package main

import (
	"github.com/rs/zerolog/log"

	"github.com/always-cache/assets"
	collector "github.com/always-cache/assets/pkg/asset-collector"
	store "github.com/always-cache/assets/pkg/asset-store"
)

// openProvider returns the store behind a mount along with a function
// releasing it. Directories are collected into a MemStore once at startup.
func openProvider(mount ConfigMount) (store.Provider, func() error, error) {
	if mount.Dir != "" {
		files, err := collector.CollectDir(mount.Dir, collector.Options{Logger: &log.Logger})
		if err != nil {
			return nil, nil, err
		}
		mem := store.NewMemStore()
		if err := store.Save(mem, files); err != nil {
			return nil, nil, err
		}
		return mem, func() error { return nil }, nil
	}
	s, err := store.NewSQLiteStore(mount.DB)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func loadMount(mount ConfigMount) (*assets.Table, error) {
	p, closeProvider, err := openProvider(mount)
	if err != nil {
		return nil, err
	}
	defer closeProvider()
	return store.Load(p)
}

package document

import (
	"fmt"

	"github.com/taiwoajasa245/memories-api/internal/database"
	"github.com/taiwoajasa245/memories-api/pkg/config"
)

const (
	BackendSQL  = "sql"
	BackendFile = "file"
)

// Open builds the configured backend behind the read cache.
func Open(cfg *config.Config, db database.Service) (Backend, error) {
	var inner Backend
	switch cfg.StoreBackend {
	case BackendSQL, "":
		if db == nil {
			return nil, fmt.Errorf("store backend %q needs a database", BackendSQL)
		}
		inner = NewSQLBackend(db)
	case BackendFile:
		fb, err := NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open data dir: %w", err)
		}
		inner = fb
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
	return NewCached(inner, cfg.DocumentCacheSize), nil
}

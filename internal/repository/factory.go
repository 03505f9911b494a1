package repository

import (
	"gametopup-rest-api/internal/config"
)

// NewFromConfig builds the catalog repository selected by STORE_TYPE. All
// three binaries go through this so a deployment cannot end up with the API
// and the jobs pointed at different backends.
func NewFromConfig(cfg config.StoreConfig) (CatalogRepository, error) {
	switch cfg.Type {
	case "mongodb", "mongo":
		return NewMongoDBCatalogRepository(cfg.MongoURI, cfg.MongoDatabase)
	case "postgres", "postgresql":
		return NewPostgresCatalogRepository(cfg.PostgresDSN())
	default: // sqlite
		return NewSQLiteCatalogRepository(cfg.Path)
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"kpiawards/internal/config"
	"kpiawards/internal/service/awards"
	memstore "kpiawards/internal/service/store"
	"kpiawards/internal/store"
)

// ReferenceFileName reference sequences loaded by the in-memory backend
const ReferenceFileName = "references.toml"

// Backend the award service with its storage
type Backend struct {
	Name    string
	Service *awards.Service
	close   func(context.Context) error
}

// OpenBackend connects the storage selected by cfg.Data.Backend
func OpenBackend(ctx context.Context, cfg *config.AppConfig, dataDir string, log *zap.Logger) (*Backend, error) {
	switch cfg.Data.Backend {
	case config.BackendMemory:
		st := memstore.NewMemoryStore()
		refPath := filepath.Join(dataDir, ReferenceFileName)
		ref, err := memstore.LoadReferenceFile(refPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warn("no reference file, reference sequences are empty", zap.String("path", refPath))
		case err != nil:
			return nil, err
		default:
			st.Seed(ref)
		}
		return &Backend{
			Name:    config.BackendMemory,
			Service: awards.NewService(st, st, log),
			close:   func(context.Context) error { return nil },
		}, nil

	case config.BackendMongo:
		st, err := store.New(ctx, store.Options{
			URI:      cfg.Mongo.MongoURI(),
			Database: cfg.Mongo.Database,
			Timeout:  time.Duration(cfg.Mongo.TimeoutSeconds) * time.Second,
		}, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:    config.BackendMongo,
			Service: awards.NewService(st, st, log),
			close:   st.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Data.Backend)
}

// Close releases the storage
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

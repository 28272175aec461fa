package kvstore

import (
	"context"
	"fmt"

	"github.com/087pedyedkai/merch-shop/internal/config"

	"github.com/spf13/afero"
)

// Open selects and connects a storage backend from configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileStore(afero.NewOsFs(), cfg.Storage.Dir)
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg.Database.DSN())
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

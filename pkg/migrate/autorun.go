package migrate

import (
	"context"

	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/db"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// MaybeRunDev applies pending migrations automatically in development.
// Production deploys run cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.App.IsDev() {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}

	if logg != nil {
		logg.Info(ctx, "running dev migrations")
	}
	return Run(ctx, sqlDB, DefaultDir, "up")
}

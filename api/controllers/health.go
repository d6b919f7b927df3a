package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/multierr"

	"github.com/shantum/COH-ERP2-sub002/api/responses"
	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

const readinessTimeout = 5 * time.Second

// Pinger is any dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-COH-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and fails if any of them
// are down, reporting all failures at once.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-COH-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var errs []error
		failing := []string{}
		for _, name := range names {
			if err := deps[name].Ping(ctx); err != nil {
				errs = append(errs, err)
				failing = append(failing, name)
			}
		}
		if combined := multierr.Combine(errs...); combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeInternal, combined, "dependencies unavailable").
				WithDetails(map[string]any{"failing": failing})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

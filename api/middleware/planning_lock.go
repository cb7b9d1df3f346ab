package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/argunvaran/wfm-pro/api/responses"
	pkgerrors "github.com/argunvaran/wfm-pro/pkg/errors"
	"github.com/argunvaran/wfm-pro/pkg/logger"
)

const planningLockTTL = 15 * time.Minute

// LockStore is the slice of the redis client the planning guard needs.
type LockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope ...string) string
}

// PlanningLock serializes planning triggers per tenant. A second trigger
// while one is running gets 409 instead of racing the transaction.
func PlanningLock(store LockStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil {
				next.ServeHTTP(w, r)
				return
			}

			tenantID := TenantIDFromContext(r.Context())
			key := store.LockKey("planning", "tenant", tenantID.String())

			ok, err := store.SetNX(r.Context(), key, "1", planningLockTTL)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "planning lock unavailable"))
				return
			}
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "a planning run is already in progress for this tenant"))
				return
			}
			defer func() {
				if err := store.Del(context.WithoutCancel(r.Context()), key); err != nil && logg != nil {
					logg.Error(r.Context(), "failed to release planning lock", err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

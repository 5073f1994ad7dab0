package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/apierr"
	"github.com/Remblej/Game-of-Space-and-Time/internal/model"
	"github.com/Remblej/Game-of-Space-and-Time/internal/services/player"
)

type contextKey string

const playerContextKey contextKey = "player"

// Identity extracts the caller identity from a request. The Authorization
// bearer header wins; the identity query parameter is the fallback for
// EventSource and websocket clients, which cannot set headers.
func Identity(r *http.Request) model.Identity {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return model.Identity(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return model.Identity(r.URL.Query().Get("identity"))
}

// Auth resolves the caller identity to a player record and stores it on
// the request context. Identities that never connected are rejected.
func Auth(directory *player.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := Identity(r)
			if identity == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			caller, err := directory.Resolve(r.Context(), identity)
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					apierr.WriteError(w, apierr.NewUnknownIdentityError())
				} else {
					apierr.WriteError(w, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPlayer returns the authenticated player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	caller, _ := ctx.Value(playerContextKey).(*model.Player)
	return caller
}

// MustGetPlayer returns the authenticated player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	caller := GetPlayer(ctx)
	if caller == nil {
		panic("no player in context - auth middleware not applied?")
	}
	return caller
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/pkg/utils"
)

type ContextKey string

const (
	ActorKey  ContextKey = "actor"
	HandleKey ContextKey = "handle"
)

type Middleware struct {
	jwt    JWTServiceInterface
	admins map[int64]struct{}
}

func NewMiddleware(jwt JWTServiceInterface, admins map[int64]struct{}) *Middleware {
	return &Middleware{jwt: jwt, admins: admins}
}

// Authenticate resolves the bearer token into a domain.Actor. Admin rights come
// from the configured allow-list, never from the token itself.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		_, admin := m.admins[claims.UserID]
		actor := domain.Actor{UserID: claims.UserID, Admin: admin}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor, claims.Handle)))
	})
}

// RequireAdmin rejects actors outside the allow-list with 403.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.Admin {
			utils.RespondWithError(w, http.StatusForbidden, domain.ErrNotAuthorized.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(domain.Actor)
	return actor, ok
}

func HandleFromContext(ctx context.Context) string {
	handle, _ := ctx.Value(HandleKey).(string)
	return handle
}

func WithActor(ctx context.Context, actor domain.Actor, handle string) context.Context {
	ctx = context.WithValue(ctx, ActorKey, actor)
	return context.WithValue(ctx, HandleKey, handle)
}

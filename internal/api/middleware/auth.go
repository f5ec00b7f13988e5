package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
	msgUserIDTooLong = "ID пользователя длиннее 64 символов"
	msgAdminOnly     = "операция доступна только оператору"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth кладет в контекст вызывающего из заголовков X-User-ID и X-User-Role.
// Подлинность заголовков обеспечивает шлюз перед сервисом
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		if utf8.RuneCountInString(userID) > domain.MaxActorIDLength {
			handlers.RespondBadRequest(w, msgUserIDTooLong)
			return
		}

		role := domain.RoleCustomer
		if raw := strings.TrimSpace(r.Header.Get(HeaderUserRole)); raw != "" {
			role = domain.Role(strings.ToLower(raw))
		}
		if !role.IsValid() {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{ID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только операторов. Ставится после Auth
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		if !actor.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor кладет вызывающего в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает вызывающего из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok && actor.ID != ""
}

// GetUserID достает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	actor, ok := GetActor(ctx)
	return actor.ID, ok
}

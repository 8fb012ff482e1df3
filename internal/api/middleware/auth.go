package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/domain"
)

const msgUnauthorized = "требуется аутентификация"

type ctxKey string

const principalKey ctxKey = "principal"

// TokenValidator проверяет JWT и возвращает субъекта запроса
type TokenValidator interface {
	ValidateToken(tokenString string) (domain.Principal, error)
}

// Auth извлекает Bearer токен, проверяет его и кладёт Principal в контекст
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			principal, err := validator.ValidateToken(token)
			if err != nil {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth кладёт Principal в контекст, если передан валидный токен,
// но не отклоняет анонимные запросы. Используется на публичных маршрутах,
// поведение которых зависит от роли
func OptionalAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
				if principal, err := validator.ValidateToken(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), principalKey, principal))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromContext возвращает субъекта запроса, положенного Auth
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

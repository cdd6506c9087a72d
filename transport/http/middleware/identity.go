package middleware

import (
	"context"
	"net/http"
	"roomify/infras/otel"
	"roomify/internal/domains/user/service"
	"roomify/shared/constant"
	"roomify/shared/failure"
	"roomify/transport/http/response"
	"strings"

	"github.com/rs/zerolog/log"
)

type IdentityMiddleware interface {
	Identify(next http.Handler) http.Handler
}

type identityImpl struct {
	users service.User
	otel  otel.Otel
}

func NewIdentityMiddleware(users service.User, otel otel.Otel) IdentityMiddleware {
	return &identityImpl{
		users: users,
		otel:  otel,
	}
}

// Identify resolves the X-User-ID header to a known user and stores the
// caller's id and role on the request context. Unknown or missing callers
// get 401.
func (m *identityImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "identity.middleware")

		userID := strings.TrimSpace(r.Header.Get(constant.RequestHeaderUserID))
		if userID == constant.Empty {
			err := failure.Unauthorized("missing " + constant.RequestHeaderUserID + " header")
			scope.TraceError(err)
			scope.End()

			response.WithError(w, err)

			return
		}

		user, err := m.users.Get(ctx, userID)
		if err != nil {
			if failure.IsNotFound(err) {
				err = failure.UnidentifiedCaller
			} else {
				log.Error().Err(err).Str("user_id", userID).Msg("failed to resolve caller")
			}

			scope.TraceError(err)
			scope.End()

			response.WithError(w, err)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "identity",
			"user.id":         user.ID,
			"user.role":       user.Role,
		})
		scope.End()

		ctx = context.WithValue(r.Context(), constant.ContextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

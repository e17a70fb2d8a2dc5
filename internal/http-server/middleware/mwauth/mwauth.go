// Package mwauth gates requests the way every privileged call must pass:
// token signature and expiry first, then the revocation ledger, then the
// role permission table.
package mwauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"ticketgate/internal/auth/permissions"
	"ticketgate/internal/auth/token"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/models"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	rawTokenKey
)

type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type Authenticator struct {
	log    *slog.Logger
	tokens TokenVerifier
	ledger RevocationChecker
}

func New(log *slog.Logger, tokens TokenVerifier, ledger RevocationChecker) *Authenticator {
	return &Authenticator{
		log:    log.With(slog.String("component", "middleware/auth")),
		tokens: tokens,
		ledger: ledger,
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	return strings.TrimPrefix(header, "Bearer "), true
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request) (*http.Request, bool) {
	raw, ok := bearerToken(r)
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authorization token is missing or invalid"))
		return nil, false
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		a.log.Info("token rejected", sl.Err(err))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("token expired or invalid"))
		return nil, false
	}

	revoked, err := a.ledger.IsTokenRevoked(r.Context(), raw)
	if err != nil {
		a.log.Error("failed to check revocation ledger", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return nil, false
	}
	if revoked {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("token is revoked, please sign in again"))
		return nil, false
	}

	ctx := context.WithValue(r.Context(), claimsKey, claims)
	ctx = context.WithValue(ctx, rawTokenKey, raw)

	return r.WithContext(ctx), true
}

// Require rejects requests without a valid, unrevoked bearer token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, ok := a.authenticate(w, r)
		if !ok {
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Optional lets anonymous requests through as guests but fully validates
// a bearer token when one is presented.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := bearerToken(r); present {
			var ok bool
			r, ok = a.authenticate(w, r)
			if !ok {
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAction enforces the static permission table. Requests without
// claims are treated as guests.
func RequireAction(log *slog.Logger, action permissions.Action) func(next http.Handler) http.Handler {
	log = log.With(slog.String("component", "middleware/auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := models.RoleGuest
			if claims, ok := ClaimsFromContext(r.Context()); ok {
				role = claims.Role
			}

			if !permissions.Allowed(role, action) {
				log.Info("action denied",
					slog.String("role", role.String()),
					slog.String("action", string(action)),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

// TokenFromContext returns the raw bearer token carried by the request.
func TokenFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(rawTokenKey).(string)
	return raw, ok
}

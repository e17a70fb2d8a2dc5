package signout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
)

type SignoutResponse struct {
	response.Response
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenRevoker
type TokenRevoker interface {
	RevokeToken(ctx context.Context, token string) error
}

func New(log *slog.Logger, ledger TokenRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signout.New"

		log := log.With(slog.String("op", op))

		raw, ok := mwauth.TokenFromContext(r.Context())
		if !ok {
			log.Error("no token in request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is missing or invalid"))
			return
		}

		if err := ledger.RevokeToken(r.Context(), raw); err != nil {
			log.Error("failed to revoke token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to sign out"))
			return
		}

		log.Info("token revoked")

		render.JSON(w, r, SignoutResponse{
			Response: response.OK(),
			Message:  "logout successful",
		})
	}
}

package signin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketgate/internal/auth/password"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
)

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninResponse struct {
	response.Response
	Token string `json:"token"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenIssuer
type TokenIssuer interface {
	Issue(userID, username string, role models.Role) (string, error)
}

func New(log *slog.Logger, users UserProvider, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signin.New"

		log := log.With(slog.String("op", op))

		var req SigninRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		user, err := users.UserByUsername(r.Context(), req.Username)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Info("unknown username", slog.String("username", req.Username))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid username or password"))
				return
			}

			log.Error("failed to get user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}

		if !password.Verify(req.Password, user.PasswordHash) {
			log.Info("password mismatch", slog.String("username", req.Username))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid username or password"))
			return
		}

		signed, err := tokens.Issue(user.ID, user.Username, user.Role)
		if err != nil {
			log.Error("failed to issue token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}

		log.Info("user signed in",
			slog.String("user_id", user.ID),
			slog.String("role", user.Role.String()),
		)

		render.JSON(w, r, SigninResponse{
			Response: response.OK(),
			Token:    signed,
		})
	}
}

package signup

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

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=5,max=30"`
	Password string `json:"password" validate:"required,min=5,max=100"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=Attendee Organizer"`
}

type SignupResponse struct {
	response.Response
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserRegistrar
type UserRegistrar interface {
	CreateUser(ctx context.Context, username, passwordHash string, role models.Role) (*models.User, error)
}

func New(log *slog.Logger, registrar UserRegistrar, hasher password.Hasher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.signup.New"

		log := log.With(slog.String("op", op))

		var req SignupRequest

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

		role := models.RoleAttendee
		if req.Role != "" {
			role, err = models.ParseRole(req.Role)
			if err != nil {
				log.Error("invalid role", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid role"))
				return
			}
		}

		hash, err := hasher.Hash(req.Password)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create user"))
			return
		}

		user, err := registrar.CreateUser(r.Context(), req.Username, hash, role)
		if err != nil {
			if errors.Is(err, storage.ErrUserExists) {
				log.Info("username already taken", slog.String("username", req.Username))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("username already exists"))
				return
			}

			log.Error("failed to create user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create user"))
			return
		}

		log.Info("user created",
			slog.String("user_id", user.ID),
			slog.String("role", user.Role.String()),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, SignupResponse{
			Response: response.OK(),
			UserID:   user.ID,
			Role:     user.Role.String(),
		})
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ticketgate/internal/auth/password"
	"ticketgate/internal/auth/permissions"
	"ticketgate/internal/auth/token"
	"ticketgate/internal/config"
	"ticketgate/internal/http-server/handlers/auth/signin"
	"ticketgate/internal/http-server/handlers/auth/signout"
	"ticketgate/internal/http-server/handlers/auth/signup"
	"ticketgate/internal/http-server/handlers/coorganizer/assignCoOrganizer"
	"ticketgate/internal/http-server/handlers/coorganizer/removeCoOrganizer"
	"ticketgate/internal/http-server/handlers/event/browseEvents"
	"ticketgate/internal/http-server/handlers/event/createEvent"
	"ticketgate/internal/http-server/handlers/event/deleteEvent"
	"ticketgate/internal/http-server/handlers/event/updateEvent"
	"ticketgate/internal/http-server/handlers/event/viewAttendees"
	"ticketgate/internal/http-server/handlers/event/viewSales"
	"ticketgate/internal/http-server/handlers/ticket/cancelTicket"
	"ticketgate/internal/http-server/handlers/ticket/myTickets"
	"ticketgate/internal/http-server/handlers/ticket/purchaseTicket"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/http-server/middleware/mwlogger"
	"ticketgate/internal/lib/logger/handlers/slogpretty"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/storage"
	"ticketgate/internal/storage/memory"
	"ticketgate/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting ticketgate", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	var store storage.Storage
	closeStorage := func() error { return nil }

	switch cfg.Storage.Driver {
	case "memory":
		store = memory.New()
		log.Warn("using in-memory storage, all data is lost on restart")
	default:
		pg, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}
		store = pg
		closeStorage = pg.Close
	}

	tokens := token.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	auth := mwauth.New(log, tokens, store)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/auth/signup", signup.New(log, store, hasher))
	router.Post("/auth/signin", signin.New(log, store, tokens))
	router.With(auth.Require).Post("/auth/signout", signout.New(log, store))

	router.With(auth.Optional).Get("/events", browseEvents.New(log, store))

	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionCreateEvent)).
		Post("/events", createEvent.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionUpdateEvent)).
		Put("/events/{id}", updateEvent.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionDeleteEvent)).
		Delete("/events/{id}", deleteEvent.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionViewSales)).
		Get("/events/sales", viewSales.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionViewAttendees)).
		Get("/events/{id}/attendees", viewAttendees.New(log, store))

	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionPurchaseTickets)).
		Post("/events/{id}/tickets", purchaseTicket.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionCancelTicket)).
		Delete("/events/{id}/tickets", cancelTicket.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionViewMyTickets)).
		Get("/tickets", myTickets.New(log, store))

	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionAssignCoOrganizer)).
		Post("/events/{id}/coorganizers", assignCoOrganizer.New(log, store))
	router.With(auth.Require, mwauth.RequireAction(log, permissions.ActionRemoveCoOrganizer)).
		Delete("/events/{id}/coorganizers/{userID}", removeCoOrganizer.New(log, store))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		ticker := time.NewTicker(cfg.Auth.BlacklistSweep)
		defer ticker.Stop()

		for range ticker.C {
			cutoff := time.Now().Add(-cfg.Auth.BlacklistRetention)

			pruned, err := store.PruneRevokedTokens(context.Background(), cutoff)
			if err != nil {
				log.Error("failed to prune revoked tokens", sl.Err(err))
				continue
			}

			if pruned > 0 {
				log.Info("pruned revoked tokens", slog.Int64("count", pruned))
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err := closeStorage(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}

package main

import (
	"net/http"

	"spendwise/internal/config"
	"spendwise/internal/handlers"
	"spendwise/internal/kv"
	"spendwise/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	store, err := kv.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer store.Close()

	accounts := storage.NewAccountStore(store)
	sessions := storage.NewSessionManager(store, accounts)
	expenses := storage.NewExpenseStore(store)

	h := handlers.New(accounts, sessions, expenses, logger)
	router := setupRouter(h)

	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func setupRouter(h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/login", h.LoginEntry)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/expenses", h.ListExpenses)
		r.Post("/expenses", h.CreateExpense)
		r.Put("/expenses/{id}", h.UpdateExpense)
		r.Delete("/expenses/{id}", h.DeleteExpense)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/expenses", http.StatusFound)
	})

	return r
}

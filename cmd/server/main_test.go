package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spendwise/internal/handlers"
	"spendwise/internal/kv"
	"spendwise/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupRouter(t *testing.T) {
	store, err := kv.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to open store")
	defer store.Close()

	accounts := storage.NewAccountStore(store)
	sessions := storage.NewSessionManager(store, accounts)
	expenses := storage.NewExpenseStore(store)
	h := handlers.New(accounts, sessions, expenses, zap.NewNop())

	router := setupRouter(h)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "Root redirects to /expenses",
			method:     "GET",
			path:       "/",
			wantStatus: http.StatusFound,
		},
		{
			name:       "Health check",
			method:     "GET",
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Login entry point",
			method:     "GET",
			path:       "/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "List expenses requires auth",
			method:     "GET",
			path:       "/expenses",
			wantStatus: http.StatusFound, // Should redirect to login
		},
		{
			name:       "Delete expense requires auth",
			method:     "DELETE",
			path:       "/expenses/some-id",
			wantStatus: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code,
				"%s %s returned unexpected status", tt.method, tt.path)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		logger, err := newLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

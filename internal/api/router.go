package api

import (
	"fmt"
	"net/http"

	_ "github.com/taskboard/taskboard-server/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rs/cors"
	"github.com/taskboard/taskboard-server/internal/api/handlers"
	"github.com/taskboard/taskboard-server/internal/api/middleware"
	"github.com/taskboard/taskboard-server/internal/auth"
	"github.com/taskboard/taskboard-server/internal/config"
)

// SetupRouter wires all routes. Protected routes sit behind the bearer-token
// middleware so invalid tokens are rejected before handler logic.
func SetupRouter(
	cfg config.Config,
	verifier *auth.TokenIssuer,
	authH *handlers.AuthHandler,
	taskH *handlers.TaskHandler,
	userH *handlers.UserHandler,
) http.Handler {
	mux := http.NewServeMux()
	c := cors.New(cfg.CorsConfig)
	protect := middleware.Auth(verifier)

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mux.Handle("/docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)

	// ---------- PROTECTED ROUTES ----------
	mux.Handle("GET /api/tasks", protect(http.HandlerFunc(taskH.List)))
	mux.Handle("POST /api/tasks", protect(http.HandlerFunc(taskH.Create)))
	mux.Handle("GET /api/tasks/{id}", protect(http.HandlerFunc(taskH.Get)))
	mux.Handle("PUT /api/tasks/{id}", protect(http.HandlerFunc(taskH.Update)))
	mux.Handle("PUT /api/tasks/{id}/status", protect(http.HandlerFunc(taskH.UpdateStatus)))
	mux.Handle("DELETE /api/tasks/{id}", protect(http.HandlerFunc(taskH.Delete)))
	mux.Handle("GET /api/users", protect(http.HandlerFunc(userH.List)))

	handler := c.Handler(mux)
	handler = middleware.Logger(handler)
	handler = middleware.Recover(handler)
	return handler
}

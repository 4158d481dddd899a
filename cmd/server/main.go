package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/taskboard/taskboard-server/internal/api"
	"github.com/taskboard/taskboard-server/internal/api/handlers"
	"github.com/taskboard/taskboard-server/internal/auth"
	"github.com/taskboard/taskboard-server/internal/config"
	"github.com/taskboard/taskboard-server/internal/repositories"
	"github.com/taskboard/taskboard-server/internal/tasks"
)

// @title Taskboard API
// @version 1.0
// @description Task-tracking REST API with token auth and a role-based visibility policy.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	db, err := repositories.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	log.Println("Successfully connected to database")

	users := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// Seed failures are logged, not fatal: a half-configured admin account
	// should not keep the API down.
	if err := auth.EnsureAdmin(users, cfg.Admin); err != nil {
		log.Println("Admin seeding failed, continuing:", err)
	}

	tokens := auth.NewTokenIssuer(cfg.JWT)
	authSvc := auth.NewService(users, tokens)
	taskSvc := tasks.NewService(taskRepo, cfg.EnforceMutationVisibility)

	router := api.SetupRouter(
		cfg,
		tokens,
		handlers.NewAuthHandler(authSvc),
		handlers.NewTaskHandler(taskSvc),
		handlers.NewUserHandler(users),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting Taskboard server on port: %s", cfg.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", cfg.Port, err)
	}
}

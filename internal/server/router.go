// Package server assembles the HTTP engine from configuration and storage.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/taskbot-api/internal/config"
	"github.com/yukikurage/taskbot-api/internal/constants"
	"github.com/yukikurage/taskbot-api/internal/handlers"
	"github.com/yukikurage/taskbot-api/internal/middleware"
	"github.com/yukikurage/taskbot-api/internal/repository"
	"github.com/yukikurage/taskbot-api/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a gin engine.
// A nil generator leaves the chatbot in its unconfigured state.
func New(cfg *config.Config, db *gorm.DB, generator services.TextGenerator) (*gin.Engine, error) {
	tokens, err := services.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	chatbotService := services.NewChatbotService(taskRepo, generator, cfg.AI.APIKeyName())

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Version)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
	)
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", constants.HeaderRequestID},
			ExposeHeaders:    []string{constants.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Probes and metrics (public)
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(authService)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.POST("/logout", requireAuth, authHandler.Logout)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", middleware.RequireIDParam("id", "user"), userHandler.GetUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			taskID := middleware.RequireIDParam("id", "task")
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskID, taskHandler.GetTask)
			tasks.PUT("/:id", taskID, taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskID, taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskID, taskHandler.DeleteTask)
		}

		// Chatbot routes (protected)
		chatbot := api.Group("/chatbot")
		chatbot.Use(requireAuth)
		{
			chatbot.POST("/query", chatbotHandler.Query)
		}
	}

	return r, nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ordersync/internal/api/handlers"
	"ordersync/internal/api/middleware"
	"ordersync/internal/config"
	"ordersync/internal/database"
	"ordersync/internal/logger"
	"ordersync/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, m *metrics.Registry) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	// Health check endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Ordersync is running",
			"status":  "healthy",
		})
	})

	router.GET("/metrics", gin.WrapH(m.Handler()))

	runHandler := handlers.NewRunHandler(db, logger)

	v1 := router.Group("/api/v1")
	{
		runs := v1.Group("/runs")
		{
			runs.GET("", runHandler.List)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      cors.Default().Handler(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

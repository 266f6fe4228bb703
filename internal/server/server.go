package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"zapshift/internal/auth"
	"zapshift/internal/config"
	"zapshift/internal/middleware"
	"zapshift/internal/version"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	mongo    *mongo.Client
	services *Services
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(cfg, mongoClient, db)
	services := InitServices(cfg, repos)
	handlers := InitHandlers(services)

	verifier := auth.NewJWTVerifier(cfg.Auth.TokenSecret)
	router := setupRouter(handlers, services, verifier)

	return &Server{
		cfg:      cfg,
		router:   router,
		mongo:    mongoClient,
		services: services,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close disconnects the MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server and blocks until a termination signal, then shuts
// down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    s.cfg.Server.Address(),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return s.Close()
}

func setupRouter(h *Handlers, s *Services, verifier auth.TokenVerifier) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Delivery Server is Running")
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	// Registration and public tracking need no auth
	r.POST("/users", h.Users.Create)
	r.GET("/trackings/:trackingId", h.Tracking.Logs)
	r.GET("/trackings/:trackingId/stream", h.Tracking.Stream)

	authed := r.Group("")
	authed.Use(middleware.Authenticate(verifier, s.Users))

	users := authed.Group("/users")
	{
		users.GET("", middleware.RequireAdmin(), h.Users.List)
		users.GET("/role", h.Users.GetRole)
		users.GET("/search", middleware.RequireAdmin(), h.Users.Search)
		users.PATCH("/:id/role", middleware.RequireAdmin(), h.Users.ChangeRole)
	}

	parcels := authed.Group("/parcels")
	{
		parcels.POST("", h.Parcels.Create)
		parcels.GET("", h.Parcels.List)
		parcels.GET("/:id", h.Parcels.Get)
		parcels.DELETE("/:id", h.Parcels.Delete)
		parcels.PATCH("/:id/assign-rider", middleware.RequireAdmin(), h.Parcels.AssignRider)
		parcels.PATCH("/:id/status", middleware.RequireRider(), h.Parcels.UpdateStatus)
	}

	riders := authed.Group("/riders")
	{
		riders.POST("", h.Riders.Apply)
		riders.GET("/pending", middleware.RequireAdmin(), h.Riders.Pending)
		riders.GET("/active", middleware.RequireAdmin(), h.Riders.Active)
		riders.PATCH("/:id/approve", middleware.RequireAdmin(), h.Riders.Approve)
		riders.PATCH("/:id/deactivate", middleware.RequireAdmin(), h.Riders.Deactivate)
		riders.DELETE("/:id", middleware.RequireAdmin(), h.Riders.Cancel)
		riders.GET("/earnings", middleware.RequireRider(), h.Riders.Earnings)
		riders.GET("/completed-parcels", middleware.RequireRider(), h.Riders.CompletedParcels)
		riders.POST("/cashout", middleware.RequireRider(), h.Riders.Cashout)
	}

	authed.POST("/trackings", h.Tracking.Append)

	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stickyboard/broker"
	"stickyboard/config"
	"stickyboard/database"
	"stickyboard/logger"
	"stickyboard/middleware"
	"stickyboard/routes"
	"stickyboard/services"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:   "stickyboard",
		Usage:  "sticky-note board backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serve,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", Usage: "listen port, overrides APP_PORT"},
				},
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("stickyboard: %v", err)
	}
}

func migrate(_ *cli.Context) error {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	db.Close()

	log.Println("Database migrations completed successfully")
	return nil
}

func serve(c *cli.Context) error {
	cfg := config.Load()
	if port := c.String("port"); port != "" {
		cfg.AppPort = port
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	zlog.Info("database ready", zap.String("driver", cfg.DBDriver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Change events are optional: without a reachable broker nothing is
	// recorded and the API keeps serving.
	var publisher broker.Publisher
	if cfg.NatsURL != "" {
		natsPublisher, err := broker.NewNATSPublisher(ctx, cfg.NatsURL, zlog)
		if err != nil {
			zlog.Warn("event publishing disabled", zap.Error(err))
		} else {
			publisher = natsPublisher
			defer natsPublisher.Close()
		}
	}

	noteService := services.NewNoteService(services.NoteServiceConfig{
		PatchZeroAsAbsent: cfg.PatchZeroAsAbsent,
		RecordEvents:      publisher != nil,
	}, zlog)

	if publisher != nil {
		dispatcher := services.NewEventHandlerService(db, publisher,
			time.Duration(cfg.EventPollIntervalMs)*time.Millisecond, zlog)
		dispatcher.Start()
		defer dispatcher.Stop()
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	api := router.Group("/api")
	routes.RegisterNoteRoutes(api, db, noteService)
	routes.RegisterHealthRoutes(api, db)
	if cfg.IsDevelopment() {
		routes.RegisterDebugRoutes(api, db)
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("API server is running", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
		zlog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

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

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-booking/internal/cache"
	"github.com/BruksfildServices01/court-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/court-booking/internal/db"
	"github.com/BruksfildServices01/court-booking/internal/middleware"
	"github.com/BruksfildServices01/court-booking/internal/notification"
	"github.com/BruksfildServices01/court-booking/internal/obs"
	"github.com/BruksfildServices01/court-booking/internal/routes"
	ucCourt "github.com/BruksfildServices01/court-booking/internal/usecase/court"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns only after every deferred close and the queue drain have run.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if cfg.SeedDemoData {
		if err := dbpkg.Seed(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// ======================================================
	// OPTIONAL INFRA
	// ======================================================
	if cfg.OTelEndpoint != "" {
		shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.OTelEndpoint)
		if err != nil {
			return fmt.Errorf("tracer: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(sctx); err != nil {
				log.Printf("tracer shutdown: %v", err)
			}
		}()
	}

	var courtCache ucCourt.Cache = ucCourt.NopCache{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("redis unavailable, court cache disabled: %v", err)
		} else {
			defer rdb.Close()
			courtCache = cache.NewCourtCache(rdb, cfg.CourtCacheTTL)
		}
	}

	var notifier notification.Notifier = notification.NewLogNotifier()
	if cfg.RabbitURL != "" {
		amqpNotifier, err := notification.NewAMQPNotifier(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			log.Printf("rabbitmq unavailable, logging notifications: %v", err)
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
		}
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	if cfg.OTelEndpoint != "" {
		r.Use(obs.TraceMiddleware(cfg.ServiceName))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	drain := routes.RegisterRoutes(r, db, cfg, courtCache, notifier)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	stopErr := awaitStop(quit, serveErr)

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	drain()
	return stopErr
}

// awaitStop blocks until a signal arrives or the listener fails. Both take
// the same shutdown path; only a listener failure is returned.
func awaitStop(quit <-chan os.Signal, serveErr <-chan error) error {
	select {
	case sig := <-quit:
		log.Printf("shutting down on %s", sig)
		return nil
	case err := <-serveErr:
		log.Printf("server stopped: %v", err)
		return fmt.Errorf("serve: %w", err)
	}
}

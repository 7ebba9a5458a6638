package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oxmics/metics-site/internal/api"
	"github.com/oxmics/metics-site/internal/config"
	"github.com/oxmics/metics-site/internal/contact"
	"github.com/oxmics/metics-site/internal/mailer"
	"github.com/oxmics/metics-site/internal/pkg/logger"
	"github.com/oxmics/metics-site/internal/ratelimit"
)

// checkPortAvailable verifies that the target port is not already in use,
// which catches stale processes before the server dies mid-startup.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

// buildStore selects the rate-limit backend. The redis client is
// returned so the health checker can share it; nil for other backends.
func buildStore(cfg config.RateLimitConfig) (ratelimit.Store, *redis.Client, error) {
	switch cfg.Backend {
	case "memory":
		return ratelimit.NewMemoryStore(), nil, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return ratelimit.NewRedisStore(client, cfg.Window()), client, nil
	case "file":
		store, err := ratelimit.NewFileStore(cfg.Dir)
		return store, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}

func main() {
	logger.SetLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL")))

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	store, redisClient, err := buildStore(cfg.RateLimit)
	if err != nil {
		log.Fatalf("Failed to build rate limit store: %v", err)
	}
	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.Window())

	transport, err := mailer.New(cfg.Mail)
	if err != nil {
		log.Fatalf("Failed to build mail transport: %v", err)
	}

	gateway, err := contact.NewHandler(cfg, transport, limiter)
	if err != nil {
		log.Fatalf("Failed to build contact gateway: %v", err)
	}

	health := api.NewHealthChecker(redisClient, cfg.Mail.Provider)
	router := api.NewRouter(cfg, gateway, health)
	server := api.NewServer(router)

	logger.Info("gateway configured",
		"mail_provider", cfg.Mail.Provider,
		"rate_limit_backend", cfg.RateLimit.Backend,
		"rate_limit_window", cfg.RateLimit.Window().String(),
		"allowed_origins", cfg.CORS.AllowedOrigins,
	)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, cfg.Server.Port)
		log.Printf("Starting contact gateway on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server stopped")
}

package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freshcart/internal/app"
	"freshcart/internal/cache"
	"freshcart/internal/services"
	"freshcart/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

var (
	seedOnStart     bool
	shutdownTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Seed the sample catalog when the store is empty")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
}

func runServe(ctx context.Context) error {
	cfg, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	productCache, err := cache.New(ctx, cache.Config{
		Driver:        cfg.CacheDriver,
		TTL:           cfg.CacheTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize product cache: %w", err)
	}
	defer productCache.Close()

	// --- Initialize RabbitMQ Client ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is empty; order events are disabled")
	}

	svc := app.NewServices(cfg, store, productCache, publisher)
	if seedOnStart {
		n, err := svc.Products.Seed(ctx, sampleCatalog())
		if err != nil {
			return err
		}
		log.Printf("Seeded %d products", n)
	}

	fiberApp := app.New(cfg, svc)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.AppPort)
		serverErr <- fiberApp.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

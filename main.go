// wanproxy/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wanproxy/api"
	"wanproxy/config"
	"wanproxy/wan"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.APIKey == "" {
		log.Println("Warning: DASHSCOPE_API_KEY is not set; submissions will be rejected")
	}

	// 2. Create the shared upstream HTTP client. One pooled client for
	// the whole process avoids re-establishing TCP/TLS on every call;
	// it is released exactly once when main returns.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	defer httpClient.CloseIdleConnections()

	client := wan.NewClient(cfg, httpClient)

	// 3. Set up router and server
	router := api.SetupRouter(client, cfg)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 4. Start the HTTP server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 5. Wait for interrupt signal for graceful shutdown
	<-ctx.Done()

	stop()
	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// In-flight exchanges get 5 seconds to finish before the server is
	// forced down.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		// log.Fatal skips deferred calls, so the pooled connections are
		// released here before exiting.
		httpClient.CloseIdleConnections()
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

// Command devserve serves the working directory for local front-end
// development, with CORS headers and ES module content types.
package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/f4ah6o/devserve-go/internal/banner"
	"github.com/f4ah6o/devserve-go/internal/config"
	"github.com/f4ah6o/devserve-go/internal/server"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to resolve working directory: %v", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Listen(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Port 0 in a config file binds a free port; show the real one.
	if addr, ok := srv.Addr().(*net.TCPAddr); ok {
		cfg.Port = addr.Port
	}
	banner.Render(os.Stdout, cfg)

	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	banner.Stopped(os.Stdout)
}

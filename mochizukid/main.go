package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/kennydo/mochizuki"
	"github.com/kennydo/mochizuki/admind"
	"github.com/kennydo/mochizuki/config"
)

func main() {
	// Define command-line flags
	configPath := flag.String("config", "", "Path to a YAML/TOML/JSON configuration file")
	listenAddr := flag.String("listen", "", "IRC bind address override (host:port)")
	adminAddr := flag.String("admin", "", "Admin HTTP bind address override (host:port)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *listenAddr != "" {
		if err := overrideAddr(&cfg.Server.Host, &cfg.Server.Port, *listenAddr); err != nil {
			log.Fatalf("Invalid -listen address: %v", err)
		}
	}
	if *adminAddr != "" {
		cfg.Admin.Enabled = true
		if err := overrideAddr(&cfg.Admin.Host, &cfg.Admin.Port, *adminAddr); err != nil {
			log.Fatalf("Invalid -admin address: %v", err)
		}
	}
	if *debug {
		cfg.Debug = true
	}

	// Log startup configuration
	log.Printf("Starting mochizuki with the following configuration:")
	log.Printf("Server name: %s", cfg.Server.Name)
	log.Printf("IRC bind address: %s", cfg.ListenAddress())
	log.Printf("Admin surface enabled: %v", cfg.Admin.Enabled)
	log.Printf("Registration timeout: %ds", cfg.Timeouts.Registration)
	log.Printf("Keepalive period/timeout: %ds/%ds",
		cfg.Timeouts.KeepalivePeriod, cfg.Timeouts.KeepaliveTimeout)
	log.Printf("Debug logging: %v", cfg.Debug)

	server, err := mochizuki.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	var admin *admind.Server
	if cfg.Admin.Enabled {
		admin = admind.New(server)
		go func() {
			addr := cfg.AdminListenAddress()
			log.Printf("Admin surface listening on %s", addr)
			if err := admin.StartAdminServer(addr); err != nil && err != http.ErrServerClosed {
				log.Printf("Admin server error: %v", err)
			}
		}()
	}

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Server is running. Press Ctrl+C to stop.")
	<-sigChan
	log.Println("Shutdown signal received, stopping server...")

	if admin != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := admin.StopAdminServer(ctx); err != nil {
			log.Printf("Error stopping admin server: %v", err)
		}
		cancel()
	}

	if err := server.Stop(); err != nil {
		log.Printf("Error stopping server: %v", err)
	}

	log.Println("Server stopped. Goodbye!")
}

func overrideAddr(host *string, port *int, addr string) error {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return err
	}
	*host = h
	*port = n
	return nil
}

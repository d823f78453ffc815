package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/HeartPairs/internal/config"
	"github.com/janpfeifer/HeartPairs/internal/server"
	"github.com/joho/godotenv"
	"k8s.io/klog/v2"
)

var (
	flagAddr   = flag.String("addr", "", "Address to listen on, overrides the config file (default: auto-port on localhost)")
	flagConfig = flag.String("config", "", "YAML configuration file (default: built-in settings)")
)

func main() {
	// Variables in .env become defaults for the flags below.
	_ = godotenv.Load()
	klog.InitFlags(nil)
	flag.Parse()

	configPath := *flagConfig
	if configPath == "" {
		configPath = os.Getenv("HEARTPAIRS_CONFIG")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		klog.Fatalf("Failed to load configuration: %v", err)
	}
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	} else if addr := os.Getenv("HEARTPAIRS_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make(chan *server.ServerState, 1)
	go func() {
		state := <-started
		fmt.Printf("HeartPairs server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Fatalf("Server failed: %v", err)
	}
	klog.Flush()
}

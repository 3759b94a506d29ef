package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/galacticex/exchange/internal/config"
	"github.com/galacticex/exchange/internal/observability"
	"github.com/galacticex/exchange/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to service config TOML")
	flag.Parse()

	cfg := config.DefaultServiceConfig()
	if *configPath != "" {
		loaded, err := config.LoadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "exchanged: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := observability.InitLogger(cfg.Name, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	if err := srv.Run(ctx, cfg.Addr); err != nil {
		logger.Error().Err(err).Msg("server_exit")
		os.Exit(1)
	}
}

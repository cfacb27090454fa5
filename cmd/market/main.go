package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"marketfront/internal/api"
	"marketfront/internal/config"
	"marketfront/internal/logger"
	"marketfront/internal/session"
	"marketfront/internal/view"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables from .env file, if present
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Client.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting marketplace client",
		zap.String("env", cfg.Client.Env),
		zap.String("api", cfg.API.BaseURL),
	)

	store := session.NewStore(cfg.Client.TokenPath)
	gateway := api.NewGateway(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, store, log)

	ui := view.NewUI(os.Stdin, os.Stdout)
	prices := view.NewPriceFormatter(cfg.Client.Locale)
	app := view.NewApp(gateway, store, ui, prices, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Client exited with error", zap.Error(err))
	}
}

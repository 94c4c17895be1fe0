// Package main is the entry point for the ezshop CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ezshop/internal/backend/local"
	"ezshop/internal/cli"
	"ezshop/internal/commands"
	"ezshop/internal/config"
	"ezshop/internal/kv"
	"ezshop/internal/service"
)

func main() {
	// Cancel on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		store, err := kv.Open(ctx, cfg.File.Storage.Backend, cfg.StoragePath(), cfg.Logger())
		if err != nil {
			return nil, err
		}
		return local.New(store, cfg.Logger()), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

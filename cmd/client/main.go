package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iudanet/bakeclient/internal/client/api"
	"github.com/iudanet/bakeclient/internal/client/app"
	"github.com/iudanet/bakeclient/internal/client/cli"
	"github.com/iudanet/bakeclient/internal/client/iocli"
	"github.com/iudanet/bakeclient/internal/client/session"
	"github.com/iudanet/bakeclient/internal/client/storage/boltdb"
	"github.com/iudanet/bakeclient/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Глобальные флаги, значения по умолчанию берутся из окружения
	showVersion := flag.Bool("version", false, "Show version information")
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Создаем контекст
	ctx := context.Background()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	store := session.New(boltStorage, logger)
	apiClient := api.NewClient(cfg.ServerURL, store, logger)
	application := app.New(apiClient, store, logger)

	// Ошибка восстановления сессии не мешает работе: клиент остаётся анонимным
	if err := application.Start(ctx); err != nil {
		logger.Warn("session restore failed", "error", err)
	}

	c := cli.New(iocli.NewStdio(), application, cfg.ServerURL, logger)

	args := flag.Args()
	if len(args) == 0 {
		if err := c.Shell(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("Bake Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"PriceCast/internal/di"
	"PriceCast/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	symbol := flag.String("symbol", "", "print one report for this symbol and exit")
	seedFlag := flag.String("seed", "", "explicit seed for -symbol")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Wire DI: Initialize all dependencies
	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()

	if *symbol != "" {
		var seed *uint64
		if *seedFlag != "" {
			s, err := strconv.ParseUint(*seedFlag, 10, 64)
			if err != nil {
				log.Fatalf("invalid -seed %q: %v", *seedFlag, err)
			}
			seed = &s
		}
		if err := app.PrintReport(context.Background(), os.Stdout, *symbol, seed); err != nil {
			log.Printf("report error: %v", err)
			cleanup()
			os.Exit(1)
		}
		return
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		cleanup()
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kinestex/kinestex-go/internal/config"
	"github.com/kinestex/kinestex-go/internal/content"
	kmcp "github.com/kinestex/kinestex-go/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional; KINESTEX_* env and .env also apply)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("kinestex-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client := content.NewClient(cfg.API.Key, cfg.API.Company,
		content.WithBaseURL(cfg.API.BaseURL),
		content.WithLang(cfg.API.Lang),
		content.WithLogger(log),
	)

	s := kmcp.New(client, Version, log)
	log.Info("mcp server starting", "version", Version, "api", cfg.API.BaseURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

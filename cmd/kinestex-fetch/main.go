package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kinestex/kinestex-go/internal/config"
	"github.com/kinestex/kinestex-go/internal/content"
	"github.com/kinestex/kinestex-go/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional; KINESTEX_* env and .env also apply)")
	kind := flag.String("type", "workout", "content type: workout, plan or exercise")
	category := flag.String("category", "", "category filter (forces a paginated result)")
	bodyParts := flag.String("body-parts", "", "comma-separated body parts filter (forces a paginated result)")
	lastDocID := flag.String("last-doc-id", "", "pagination cursor from a previous page")
	limit := flag.Int("limit", 0, "page size")
	lang := flag.String("lang", "", "content language (default from config)")
	parallel := flag.Int("parallel", content.DefaultConcurrency, "concurrent requests when several selectors are given")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("kinestex-fetch", Version)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	t, err := content.ParseType(*kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var parts []models.BodyPart
	for _, name := range strings.Split(*bodyParts, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		bp, ok := models.ParseBodyPart(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown body part %q\n", name)
			os.Exit(1)
		}
		parts = append(parts, bp)
	}

	base := content.Request{
		Type:      t,
		Category:  *category,
		BodyParts: parts,
		LastDocID: *lastDocID,
		Limit:     *limit,
		Lang:      *lang,
	}

	// Each positional argument is an id or title; none lists the collection.
	reqs := []content.Request{base}
	if flag.NArg() > 0 {
		reqs = reqs[:0]
		for _, sel := range flag.Args() {
			r := base
			r.ID = sel
			reqs = append(reqs, r)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := content.NewClient(cfg.API.Key, cfg.API.Company,
		content.WithBaseURL(cfg.API.BaseURL),
		content.WithLang(cfg.API.Lang),
		content.WithLogger(log),
	)

	results, err := client.FetchAll(ctx, reqs, *parallel)
	if err != nil {
		log.Error("fetch failed", "type", t, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out any
	if len(results) == 1 {
		out = unwrap(results[0])
	} else {
		values := make([]any, len(results))
		for i, r := range results {
			values[i] = unwrap(r)
		}
		out = values
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error("write output", "error", err)
		os.Exit(1)
	}
}

func unwrap(r *content.Result) any {
	switch {
	case r.Workout != nil:
		return r.Workout
	case r.Workouts != nil:
		return r.Workouts
	case r.Plan != nil:
		return r.Plan
	case r.Plans != nil:
		return r.Plans
	case r.Exercise != nil:
		return r.Exercise
	default:
		return r.Exercises
	}
}

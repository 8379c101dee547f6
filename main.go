// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/house-vote/boltstore"
	"github.com/danielhkuo/house-vote/cliparse"
	"github.com/danielhkuo/house-vote/db"
	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/metrics"
	"github.com/danielhkuo/house-vote/middleware"
	"github.com/danielhkuo/house-vote/report"
	"github.com/danielhkuo/house-vote/router"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cmd, args, err := cliparse.SplitCommand(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing command", "error", err)
		os.Exit(2)
	}

	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if err := run(cmd, cfg); err != nil {
		slog.Error("house-vote failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

// run owns the store, so every return path closes it
func run(cmd string, cfg cliparse.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}
	defer store.Close()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	coord := election.NewCoordinator(store,
		election.WithPolicy(election.Policy(cfg.VoteLimit)),
		election.WithMetrics(metrics.New("housevote", reg)),
		election.WithLogger(slog.Default()),
	)
	svc := election.NewService(store, coord, slog.Default())

	ctx := context.Background()
	switch cmd {
	case cliparse.CommandSeed:
		res := svc.InitializeElectionData(ctx)
		if !res.Success {
			return errors.New(res.Message)
		}
		fmt.Println(res.Message)
		return nil

	case cliparse.CommandResults:
		report.PrintResults(os.Stdout, svc.Summary(ctx))
		return nil

	case cliparse.CommandExport:
		return export(svc)
	}
	return serve(svc, cfg, reg)
}

// openStore connects the configured backend and prepares its schema
func openStore(cfg cliparse.Config) (election.Store, error) {
	if cfg.DatabaseType == cliparse.DatabaseBolt {
		return boltstore.Open(boltstore.Options{DataDir: cfg.DatabaseURL})
	}

	dialect := db.Dialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return db.NewStore(conn, dialect), nil
}

func export(svc *election.Service) error {
	e := svc.Export(context.Background())
	path := fmt.Sprintf("election-results-%s.json", e.Timestamp.Format("2006-01-02"))

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	report.PrintExport(os.Stdout, e, path)
	return nil
}

func serve(svc *election.Service, cfg cliparse.Config, reg *prometheus.Registry) error {
	// A fresh database gets the default roster; a failed read stops startup
	seeded, err := svc.EnsureSeeded(context.Background())
	if err != nil {
		return fmt.Errorf("failed to check candidates: %w", err)
	}
	if seeded {
		slog.Info("no candidates found, loaded default roster")
	}

	mux := router.NewRouter(svc, cfg, reg)

	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	slog.Info("Listening", "port", cfg.Port, "vote_limit", cfg.VoteLimit)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server closed: %w", err)
	}
	slog.Info("Server closed")
	return nil
}

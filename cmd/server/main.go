package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/logging"
	"github.com/rhyrak/go-timetable/internal/store"
)

func main() {
	configFile := flag.String("config", "", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Fatal("creating database dir", zap.Error(err))
	}
	repo, err := store.Open(context.Background(), cfg.Database.Path)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	defer repo.Close()

	r := newRouter(&server{cfg: cfg, repo: repo, log: logger})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("listening", zap.String("addr", addr), zap.String("policy", cfg.Parser.Policy))
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

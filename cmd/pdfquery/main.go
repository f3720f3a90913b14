package main

import (
	"context"
	"fmt"
	"os"

	"pdfquery/internal/config"
	"pdfquery/internal/export"
	"pdfquery/internal/lifecycle"
	"pdfquery/internal/logging"
	"pdfquery/internal/store"
	"pdfquery/internal/transport"
	"pdfquery/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pdfquery:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := transport.New(cfg.APIURL, st,
		transport.WithTimeout(cfg.RequestTimeout),
		transport.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Check {
		checkCtx, checkCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer checkCancel()
		if err := client.Health(checkCtx); err != nil {
			return fmt.Errorf("backend %s: %w", cfg.APIURL, err)
		}
		fmt.Println("backend ok:", cfg.APIURL)
		return nil
	}

	if cfg.NewSession {
		if err := st.Clear(ctx); err != nil {
			return fmt.Errorf("forget saved session: %w", err)
		}
	}

	exp, err := export.New(cfg.ExportDir)
	if err != nil {
		return err
	}

	ctrl := lifecycle.New(st, client,
		lifecycle.WithSettler(lifecycle.DelaySettler{Delay: cfg.SettleDelay}),
		lifecycle.WithLogger(logger),
	)
	logger.Info("starting", zap.String("api_url", cfg.APIURL), zap.String("db_path", cfg.DBPath))

	m := ui.NewModel(ctrl, exp)
	defer m.Close()

	// Rehydration is a network call; the UI renders while it runs.
	go func() {
		if err := ctrl.Start(ctx); err != nil {
			logger.Error("startup failed", zap.Error(err))
		}
	}()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

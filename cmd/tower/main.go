package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/tower-engine/internal/agegate"
	"github.com/jwebster45206/tower-engine/internal/config"
	"github.com/jwebster45206/tower-engine/internal/content"
	"github.com/jwebster45206/tower-engine/internal/debugconsole"
	"github.com/jwebster45206/tower-engine/internal/geo"
	"github.com/jwebster45206/tower-engine/internal/logger"
	istorage "github.com/jwebster45206/tower-engine/internal/storage"
	"github.com/jwebster45206/tower-engine/internal/terminal"
	"github.com/jwebster45206/tower-engine/pkg/engine"
	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/scenario/cntower"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tower:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog, err := logger.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tower:", err)
	}
	defer closeLog()
	log := logger.Setup(cfg, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := terminal.New(os.Stdout, os.Stdin, terminal.Options{
		Width:  cfg.TermWidth,
		Pacing: cfg.NarrationPacing,
	})
	console.Title(cntower.Title)

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	fetcher := content.NewFetcher(content.Options{
		OverlayURL:  cfg.OverlayURL,
		OverlayFile: cfg.OverlayFile,
		BannerURL:   cfg.BannerURL,
		Timeout:     cfg.FetchTimeout,
	}, nil, console, log)

	table, country, found := fetchStartup(ctx, cfg, fetcher, console, log)

	restricted := false
	if found {
		console.Notice(fmt.Sprintf("Detected user country: %s", country))
		if geo.IsRestricted(country) {
			console.Notice("Some game features are not available in your country.")
			restricted = true
		} else {
			console.Notice("All in-game content is available in your country. Enjoy!")
		}
	} else {
		console.Notice("Could not determine user country. Proceeding with caution.")
		country = agegate.UnknownCountry
	}

	ok, err := agegate.New(store, console, console, log).Check(ctx, country)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if !ok {
		log.Info("Age gate rejected player")
		return nil
	}

	scenes, err := cntower.New(table)
	if err != nil {
		return fmt.Errorf("build scenario: %w", err)
	}

	eng, err := engine.New(engine.Config{
		Store:      scenes,
		Out:        console,
		In:         console,
		Saves:      store,
		Debug:      debugconsole.New(console, console, log),
		Banner:     fetcher,
		Logger:     log,
		Slot:       storage.DefaultSlot,
		Overlay:    cfg.SweetMode,
		Restricted: restricted,
	})
	if err != nil {
		return err
	}

	log.Info("Starting game", "scenario", scenes.Name, "overlay", eng.OverlayEnabled(), "restricted", restricted)
	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openStorage opens the configured backend, falling back to plain files so
// saving keeps working when a database is unavailable.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	store, err := istorage.Open(ctx, istorage.Options{
		Backend:   cfg.SaveBackend,
		SavePath:  cfg.SavePath,
		AgePath:   cfg.AgePath,
		StorePath: cfg.StorePath,
		RedisURL:  cfg.RedisURL,
	}, log)
	if err == nil {
		return store, nil
	}

	log.Error("Failed to open save backend, using files", "backend", cfg.SaveBackend, "error", err)
	fileStore, ferr := istorage.NewFileStorage(cfg.SavePath, cfg.AgePath, log)
	if ferr != nil {
		return nil, fmt.Errorf("open file storage: %w", ferr)
	}
	return fileStore, nil
}

// fetchStartup loads the overlay and resolves the country concurrently.
func fetchStartup(ctx context.Context, cfg *config.Config, fetcher *content.Fetcher, out *terminal.Console, log *slog.Logger) (*overlay.Table, string, bool) {
	var (
		table   *overlay.Table
		country string
		found   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		table = fetcher.FetchOverlay(gctx)
		return nil
	})
	g.Go(func() error {
		if cfg.GeoDisabled {
			return nil
		}
		zones, err := geo.LoadZoneTables(os.DirFS(geo.ZoneDir()))
		if err != nil {
			log.Debug("Timezone tables unavailable", "error", err)
			zones = nil
		}
		resolver := geo.NewResolver(geo.Options{
			Providers: cfg.GeoProviders,
			Timeout:   cfg.GeoTimeout,
			Zones:     zones,
		}, nil, out, log)
		country, found = resolver.Resolve(gctx)
		return nil
	})
	_ = g.Wait()

	return table, country, found
}

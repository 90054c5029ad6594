// Command pardis is a research aggregator for Persian garden studies.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pardis/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pardis/internal/adapters/driven/fulltext"
	badgerstore "github.com/custodia-labs/pardis/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/pardis/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pardis/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pardis/internal/adapters/driving/cli"
	"github.com/custodia-labs/pardis/internal/connectors"
	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driven"
	"github.com/custodia-labs/pardis/internal/core/services"
	"github.com/custodia-labs/pardis/internal/logger"
	"github.com/custodia-labs/pardis/internal/normalisers/pdf"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("loading .env: %v", err)
	}

	err := cli.Execute(ctx, version, bootstrap)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires stores, adapters and services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, connectors.Names)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings.Sources.UserAgent == domain.DefaultUserAgent {
		settings.Sources.UserAgent += "/" + version
	}

	store, blobs, closeStores, err := openStores(settings.Library.DataDir, opts.Ephemeral)
	if err != nil {
		return nil, err
	}

	indexService := services.NewIndexService(
		store,
		fulltext.New(),
		pdf.NewExtractor(pdf.NewEngine()),
		settings.Index,
	)
	if _, err := indexService.Rehydrate(ctx); err != nil {
		logger.Error("rebuilding index: %v", err)
	}

	adapters := connectors.Build(settings.Sources, nil)
	logger.Debug("sources: %d enabled of %d", len(adapters), len(connectors.Names))

	return &cli.Services{
		Search:   services.NewFederatedSearchService(adapters, *settings),
		Index:    indexService,
		Library:  services.NewLibraryService(store, blobs, indexService),
		Settings: settingsService,
		Close:    closeStores,
	}, nil
}

// openStores opens the sqlite library and badger blob store under
// dataDir, or in-memory stores when ephemeral is set.
func openStores(dataDir string, ephemeral bool) (driven.LibraryStore, driven.BlobStore, func() error, error) {
	if ephemeral {
		logger.Info("using in-memory library")
		return memory.NewLibraryStore(), memory.NewBlobStore(), nil, nil
	}

	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening library database: %w", err)
	}
	blobs, err := badgerstore.NewBlobStore(dataDir)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("opening blob store: %w", err)
	}
	logger.Debug("library at %s, files at %s", db.Path(), blobs.Path())

	closeAll := func() error {
		return errors.Join(blobs.Close(), db.Close())
	}
	return db.LibraryStore(), blobs, closeAll, nil
}

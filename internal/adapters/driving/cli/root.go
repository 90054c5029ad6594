// Package cli provides the cobra command tree for the pardis binary.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pardis/internal/core/ports/driving"
	"github.com/custodia-labs/pardis/internal/logger"
)

// version is set by Execute from build flags.
var version = "dev"

// Root flags.
var (
	verbose   bool
	ephemeral bool
)

// Services used by commands. Set by the bootstrap, or directly in tests.
var (
	searchService   driving.FederatedSearchService
	indexService    driving.IndexService
	libraryService  driving.LibraryService
	settingsService driving.SettingsService
)

// Services bundles the driving ports the commands call.
type Services struct {
	Search   driving.FederatedSearchService
	Index    driving.IndexService
	Library  driving.LibraryService
	Settings driving.SettingsService

	// Close releases stores. May be nil.
	Close func() error
}

// Options carries root flags the composition root needs.
type Options struct {
	// Ephemeral keeps the library in memory for this run.
	Ephemeral bool
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap     Bootstrap
	closeServices func() error
)

// skipServices marks commands that run without opening any store.
const skipServices = "pardis.skip-services"

var rootCmd = &cobra.Command{
	Use:   "pardis",
	Short: "Persian garden research aggregator",
	Long: `Pardis searches academic, museum and literary sources on Persian gardens
at once and keeps a local library of the works you save.

Papers come from SID, NoorMags, Semantic Scholar and CrossRef. Artworks come
from the Met, Cleveland and Art Institute of Chicago collections. Poetry comes
from Ganjoor, alongside a built-in corpus of travelogue passages.

Attached PDFs are indexed for local full-text search in Persian and English.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.SetOut(os.Stdout)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output to stderr")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the library in memory for this run")
}

// Execute runs the root command. boot is called before any command
// that needs services.
func Execute(ctx context.Context, v string, boot Bootstrap) error {
	if v != "" {
		version = v
	}
	bootstrap = boot
	defer teardownServices()

	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}

	svc, err := bootstrap(cmd.Context(), Options{Ephemeral: ephemeral})
	if err != nil {
		return err
	}
	setServices(svc)
	return nil
}

func setServices(svc *Services) {
	searchService = svc.Search
	indexService = svc.Index
	libraryService = svc.Library
	settingsService = svc.Settings
	closeServices = svc.Close
}

func teardownServices() {
	if closeServices == nil {
		return
	}
	if err := closeServices(); err != nil {
		logger.Error("closing stores: %v", err)
	}
	closeServices = nil
}

var (
	errSearchNotConfigured   = errors.New("search service not configured")
	errLibraryNotConfigured  = errors.New("library service not configured")
	errIndexNotConfigured    = errors.New("index service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
)

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pardis/internal/adapters/driving/inbox"
)

var inboxDir string

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Harvest PDFs from a folder",
}

var inboxWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox folder and add new PDFs to the library",
	Long: `Watches the inbox folder (library.inbox_dir, default ~/.pardis/inbox).
Every PDF placed there becomes a library record titled after its file name;
the file is attached, indexed and moved to the processed/ subfolder.

PDFs already in the folder are harvested at start. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runInboxWatch,
}

func init() {
	inboxWatchCmd.Flags().StringVar(&inboxDir, "dir", "", "folder to watch instead of library.inbox_dir")
	inboxCmd.AddCommand(inboxWatchCmd)
	rootCmd.AddCommand(inboxCmd)
}

func runInboxWatch(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	dir := inboxDir
	if dir == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		dir = settings.Library.InboxDir
	}
	if dir == "" {
		return errors.New("no inbox folder: set library.inbox_dir or pass --dir")
	}

	w := inbox.NewWatcher(libraryService, dir, inbox.WithNotify(func(h inbox.Harvested) {
		status := successStyle.Render("indexed")
		if !h.Indexed {
			status = warningStyle.Render("no text")
		}
		cmd.Printf("%s → %s  %s\n", h.File, mutedStyle.Render(h.RecordID), status)
	}))

	cmd.Printf("Watching %s for PDFs (Ctrl-C to stop)\n", w.Dir())
	return w.Run(cmd.Context())
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var libraryAttachCmd = &cobra.Command{
	Use:   "attach [id] [file]",
	Short: "Attach a file to a saved work",
	Long: `Stores a file alongside a saved work. PDFs are also indexed so their text
can be found with 'pardis local'.`,
	Args: cobra.ExactArgs(2),
	RunE: runLibraryAttach,
}

var (
	libraryExportOut      string
	libraryExportCompress bool
)

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library as a JSON backup",
	Long: `Writes every saved work and its notes as a JSON backup. Attached files and
extracted text are not included. With --compress the backup is zstd
compressed; import detects this automatically.`,
	Args: cobra.NoArgs,
	RunE: runLibraryExport,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a library backup",
	Long: `Reads a backup written by 'pardis library export'. The whole backup is
checked before anything is written; an invalid backup leaves the library
unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryImport,
}

func init() {
	libraryExportCmd.Flags().StringVarP(&libraryExportOut, "out", "o", "", "write to this file instead of stdout")
	libraryExportCmd.Flags().BoolVar(&libraryExportCompress, "compress", false, "zstd compress the backup")

	libraryCmd.AddCommand(libraryAttachCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	libraryCmd.AddCommand(libraryImportCmd)
}

func runLibraryAttach(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	id, path := args[0], args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := libraryService.AttachFile(cmd.Context(), id, data)
	if err != nil {
		return fmt.Errorf("failed to attach file: %w", err)
	}

	cmd.Printf("Attached %s to %s\n", filepath.Base(path), id)
	switch {
	case res.Indexed:
		cmd.Println(successStyle.Render("Indexed for local search."))
	case res.IsPDF:
		cmd.Println(warningStyle.Render("No extractable text; the file is stored but not searchable."))
	}
	return nil
}

func runLibraryExport(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	data, err := libraryService.Export(cmd.Context(), libraryExportCompress)
	if err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}

	if libraryExportOut == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(libraryExportOut, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", libraryExportOut, err)
	}
	cmd.Printf("Exported library to %s\n", libraryExportOut)
	return nil
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	n, err := libraryService.Import(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("failed to import library: %w", err)
	}

	cmd.Printf("Imported %d records\n", n)
	return nil
}

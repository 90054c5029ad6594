package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

var (
	localLimit int
	localJSON  bool
)

var localCmd = &cobra.Command{
	Use:   "local [query]",
	Short: "Search the text of saved PDFs",
	Long: `Searches the full text of every PDF attached to the library, along with
record titles and authors. Matching is prefix and substring based and works
across Persian spelling variants.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLocal,
}

func init() {
	localCmd.Flags().IntVarP(&localLimit, "limit", "n", 0, "maximum number of results (0 = configured default)")
	localCmd.Flags().BoolVar(&localJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(localCmd)
}

// localHit is a record with the text around the match.
type localHit struct {
	domain.LibraryRecord
	Snippet string `json:"snippet,omitempty"`
}

func runLocal(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	query := strings.Join(args, " ")
	records, err := libraryService.Search(cmd.Context(), query, localLimit)
	if err != nil {
		return fmt.Errorf("local search failed: %w", err)
	}

	hits := make([]localHit, len(records))
	for i := range records {
		hits[i].LibraryRecord = records[i]
		if indexService == nil {
			continue
		}
		if snippet, err := indexService.Snippet(cmd.Context(), records[i].ID, query); err == nil {
			hits[i].Snippet = snippet
		}
	}

	if localJSON {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i := range hits {
		cmd.Printf("  [%d] %s  %s\n", i+1, titleStyle.Render(hits[i].Title), mutedStyle.Render(hits[i].ID))
		cmd.Printf("      %s\n", byline(hits[i].Authors, hits[i].Year))
		if hits[i].Snippet != "" {
			cmd.Printf("      %s\n", mutedStyle.Render(oneLine(hits[i].Snippet, 200)))
		}
		cmd.Println()
	}
	return nil
}

// oneLine collapses whitespace and truncates to maxRunes.
func oneLine(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "…"
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

var (
	searchPeriod string
	searchTopic  string
	searchGroup  string
	searchGarden bool
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search every remote source at once",
	Long: `Queries academic, museum and literary sources concurrently and prints the
deduplicated results grouped into papers, art and literature.

Sources that fail or time out contribute nothing; the rest are still shown.
Persian and English queries are both accepted; each source receives the
script it understands.

Periods: achaemenid, sassanid, safavid, qajar, ... (default all)
Topics:  garden_layout, qanat_water, vegetation, symbolism, pavilions,
         conservation (default general)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchPeriod, "period", "", "historical period filter")
	searchCmd.Flags().StringVar(&searchTopic, "topic", "", "research topic filter")
	searchCmd.Flags().StringVar(&searchGroup, "group", "", "only show papers, art or literature")
	searchCmd.Flags().BoolVar(&searchGarden, "garden", false, "add Persian garden context to every query")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}

	period, err := domain.ParsePeriod(searchPeriod)
	if err != nil {
		return fmt.Errorf("unknown period %q: %w", searchPeriod, err)
	}
	topic, err := domain.ParseTopic(searchTopic)
	if err != nil {
		return fmt.Errorf("unknown topic %q: %w", searchTopic, err)
	}
	group := domain.ResultGroup(strings.ToLower(searchGroup))
	if group != "" && !group.IsValid() {
		return fmt.Errorf("unknown group %q: %w", searchGroup, domain.ErrInvalidInput)
	}

	results, err := searchService.SearchAll(cmd.Context(), strings.Join(args, " "), domain.SearchFilters{
		Period:        period,
		Topic:         topic,
		GardenContext: searchGarden,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results, group)
	}

	return outputSearchGroups(cmd, results, group)
}

func outputSearchJSON(cmd *cobra.Command, results *domain.FederatedResults, group domain.ResultGroup) error {
	var v any = results
	if group != "" {
		v = groupResults(results, group)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchGroups(cmd *cobra.Command, results *domain.FederatedResults, group domain.ResultGroup) error {
	groups := []domain.ResultGroup{domain.GroupPapers, domain.GroupArt, domain.GroupLiterature}
	if group != "" {
		groups = []domain.ResultGroup{group}
	}

	total := 0
	for _, g := range groups {
		items := groupResults(results, g)
		total += len(items)
		if len(items) == 0 {
			continue
		}

		cmd.Println(headingStyle.Render(fmt.Sprintf("%s (%d)", groupHeading(g), len(items))))
		cmd.Println()
		for i := range items {
			printResult(cmd, i+1, &items[i])
		}
	}

	if total == 0 {
		cmd.Println("No results found.")
	}

	var failed []string
	for _, o := range results.Outcomes {
		if o.Failed() {
			failed = append(failed, o.Source)
		}
	}
	if len(failed) > 0 {
		cmd.Println(warningStyle.Render("Unavailable: " + strings.Join(failed, ", ")))
	}

	return nil
}

func printResult(cmd *cobra.Command, n int, r *domain.SearchResult) {
	cmd.Printf("  [%d] %s\n", n, titleStyle.Render(r.Title))
	cmd.Printf("      %s  %s\n", byline(r.Authors, r.Year), mutedStyle.Render(r.SourceLabel))
	if r.CitationCount != nil {
		cmd.Printf("      %s\n", mutedStyle.Render(fmt.Sprintf("cited by %d", *r.CitationCount)))
	}
	if r.URL != "" {
		cmd.Printf("      %s\n", mutedStyle.Render(r.URL))
	}
	cmd.Println()
}

func groupResults(results *domain.FederatedResults, g domain.ResultGroup) []domain.SearchResult {
	switch g {
	case domain.GroupPapers:
		return results.Papers
	case domain.GroupArt:
		return results.Art
	case domain.GroupLiterature:
		return results.Literature
	}
	return nil
}

func groupHeading(g domain.ResultGroup) string {
	switch g {
	case domain.GroupPapers:
		return "Papers"
	case domain.GroupArt:
		return "Art"
	default:
		return "Literature"
	}
}

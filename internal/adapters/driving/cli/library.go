package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved works",
	Long:  `List, inspect, annotate and back up the works saved to the local library.`,
}

var (
	libraryListFilter string
	libraryListJSON   bool
)

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved works, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved work with its notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var librarySaveTags []string

var librarySaveCmd = &cobra.Command{
	Use:   "save [result-file]",
	Short: "Save a search result to the library",
	Long: `Saves one search result, as printed by 'pardis search --json', to the
library. Pass - to read the result from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrarySave,
}

var (
	libraryAddTitle    string
	libraryAddAuthors  []string
	libraryAddYear     string
	libraryAddType     string
	libraryAddLang     string
	libraryAddURL      string
	libraryAddAbstract string
	libraryAddTags     []string
	libraryAddPeriod   string
	libraryAddTopic    string
)

var libraryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a work by hand",
	Args:  cobra.NoArgs,
	RunE:  runLibraryAdd,
}

var libraryEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a saved work",
	Long:  `Edits the metadata of a saved work. Only the flags given are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryEdit,
}

var libraryNotePage int

var libraryNoteCmd = &cobra.Command{
	Use:   "note [id] [text]",
	Short: "Add a note to a saved work",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runLibraryNote,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved work with its file and notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

func init() {
	libraryListCmd.Flags().StringVar(&libraryListFilter, "filter", "", "only show works whose title, authors or tags contain this")
	libraryListCmd.Flags().BoolVar(&libraryListJSON, "json", false, "output records as JSON")

	librarySaveCmd.Flags().StringArrayVar(&librarySaveTags, "tag", nil, "tag to attach (repeatable)")

	for _, c := range []*cobra.Command{libraryAddCmd, libraryEditCmd} {
		c.Flags().StringVar(&libraryAddTitle, "title", "", "title")
		c.Flags().StringArrayVar(&libraryAddAuthors, "author", nil, "author (repeatable)")
		c.Flags().StringVar(&libraryAddYear, "year", "", "year of publication or creation")
		c.Flags().StringVar(&libraryAddURL, "url", "", "link to the work")
		c.Flags().StringVar(&libraryAddAbstract, "abstract", "", "abstract or description")
		c.Flags().StringArrayVar(&libraryAddTags, "tag", nil, "tag (repeatable)")
		c.Flags().StringVar(&libraryAddPeriod, "period", "", "historical period")
		c.Flags().StringVar(&libraryAddTopic, "topic", "", "research topic")
	}
	libraryAddCmd.Flags().StringVar(&libraryAddType, "type", string(domain.DocTypePaper), "paper, artwork or travelogue")
	libraryAddCmd.Flags().StringVar(&libraryAddLang, "lang", "", "en or fa (detected from the title when empty)")

	libraryNoteCmd.Flags().IntVar(&libraryNotePage, "page", 0, "PDF page the note refers to")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryEditCmd)
	libraryCmd.AddCommand(libraryNoteCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	var (
		records []domain.LibraryRecord
		err     error
	)
	if libraryListFilter != "" {
		records, err = libraryService.Filter(cmd.Context(), libraryListFilter)
	} else {
		records, err = libraryService.List(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	if libraryListJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("Library is empty.")
		return nil
	}

	for i := range records {
		marker := " "
		if records[i].HasLocalFile {
			marker = "*"
		}
		cmd.Printf("%s %s  %s\n", marker, titleStyle.Render(records[i].Title), mutedStyle.Render(records[i].ID))
		cmd.Printf("  %s  %s\n", byline(records[i].Authors, records[i].Year), mutedStyle.Render(string(records[i].DocType)))
	}
	return nil
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	r, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	cmd.Println(headingStyle.Render(r.Title))
	cmd.Printf("  ID:       %s\n", r.ID)
	cmd.Printf("  Authors:  %s\n", byline(r.Authors, r.Year))
	cmd.Printf("  Type:     %s (%s)\n", r.DocType, r.Language)
	cmd.Printf("  Origin:   %s\n", r.Origin)
	if r.Source != "" {
		cmd.Printf("  Source:   %s\n", r.Source)
	}
	if r.URL != "" {
		cmd.Printf("  URL:      %s\n", r.URL)
	}
	if r.Period != domain.PeriodAll {
		cmd.Printf("  Period:   %s\n", r.Period)
	}
	if r.Topic != domain.TopicGeneral {
		cmd.Printf("  Topic:    %s\n", r.Topic)
	}
	if len(r.Tags) > 0 {
		cmd.Printf("  Tags:     %s\n", strings.Join(r.Tags, ", "))
	}
	file := "none"
	if r.HasLocalFile {
		file = "attached"
	}
	cmd.Printf("  File:     %s\n", file)
	cmd.Printf("  Added:    %s\n", r.AddedAt.Local().Format("2006-01-02 15:04"))

	if r.Abstract != "" {
		cmd.Println()
		cmd.Println(r.Abstract)
	}

	if len(r.Notes) > 0 {
		cmd.Println()
		cmd.Println(headingStyle.Render("Notes"))
		for _, n := range r.Notes {
			prefix := ""
			if n.Page != nil {
				prefix = fmt.Sprintf("p.%d ", *n.Page)
			}
			cmd.Printf("  - %s%s %s\n", prefix, n.Content, mutedStyle.Render(n.CreatedAt.Local().Format("2006-01-02")))
		}
	}
	return nil
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	var result domain.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("parsing search result: %w", err)
	}

	r, err := libraryService.SaveResult(cmd.Context(), result, librarySaveTags)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	cmd.Printf("Saved %s as %s\n", r.Title, r.ID)
	return nil
}

func runLibraryAdd(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}
	if strings.TrimSpace(libraryAddTitle) == "" {
		return fmt.Errorf("--title is required: %w", domain.ErrInvalidInput)
	}

	period, topic, err := parsePeriodTopic(libraryAddPeriod, libraryAddTopic)
	if err != nil {
		return err
	}

	record := domain.LibraryRecord{
		Title:    libraryAddTitle,
		Authors:  libraryAddAuthors,
		Year:     libraryAddYear,
		URL:      libraryAddURL,
		Abstract: libraryAddAbstract,
		Tags:     libraryAddTags,
		DocType:  domain.DocType(libraryAddType),
		Language: domain.Language(libraryAddLang),
		Period:   period,
		Topic:    topic,
	}

	r, err := libraryService.Add(cmd.Context(), record)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	cmd.Printf("Added %s as %s\n", r.Title, r.ID)
	return nil
}

func runLibraryEdit(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	r, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		r.Title = libraryAddTitle
	}
	if flags.Changed("author") {
		r.Authors = libraryAddAuthors
	}
	if flags.Changed("year") {
		r.Year = libraryAddYear
	}
	if flags.Changed("url") {
		r.URL = libraryAddURL
	}
	if flags.Changed("abstract") {
		r.Abstract = libraryAddAbstract
	}
	if flags.Changed("tag") {
		r.Tags = libraryAddTags
	}
	if flags.Changed("period") || flags.Changed("topic") {
		period, topic, err := parsePeriodTopic(libraryAddPeriod, libraryAddTopic)
		if err != nil {
			return err
		}
		if flags.Changed("period") {
			r.Period = period
		}
		if flags.Changed("topic") {
			r.Topic = topic
		}
	}

	updated, err := libraryService.Update(cmd.Context(), *r)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	cmd.Printf("Updated %s\n", updated.ID)
	return nil
}

func runLibraryNote(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	var page *int
	if cmd.Flags().Changed("page") {
		p := libraryNotePage
		page = &p
	}

	note, err := libraryService.AddNote(cmd.Context(), args[0], strings.Join(args[1:], " "), page)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	cmd.Printf("Added note %s\n", note.ID)
	return nil
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errLibraryNotConfigured
	}

	if err := libraryService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func parsePeriodTopic(p, t string) (domain.Period, domain.Topic, error) {
	period, err := domain.ParsePeriod(p)
	if err != nil {
		return "", "", fmt.Errorf("unknown period %q: %w", p, err)
	}
	topic, err := domain.ParseTopic(t)
	if err != nil {
		return "", "", fmt.Errorf("unknown topic %q: %w", t, err)
	}
	return period, topic, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

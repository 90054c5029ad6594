package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/logger"
)

// SearchAllInput is the input schema for the search_all tool.
type SearchAllInput struct {
	Query  string `json:"query" jsonschema:"research query in English or Persian"`
	Period string `json:"period,omitempty" jsonschema:"historical period, e.g. safavid or qajar (default all)"`
	Topic  string `json:"topic,omitempty" jsonschema:"research topic, e.g. qanat_water or symbolism (default general)"`
	Garden bool   `json:"garden,omitempty" jsonschema:"force Persian garden context into every query"`
}

// SearchAllOutput is the output schema for the search_all tool.
type SearchAllOutput struct {
	Papers     []domain.SearchResult `json:"papers"`
	Art        []domain.SearchResult `json:"art"`
	Literature []domain.SearchResult `json:"literature"`

	// Failed names the sources that errored or timed out.
	Failed []string `json:"failed,omitempty"`
}

// SearchLocalInput is the input schema for the search_local tool.
type SearchLocalInput struct {
	Query string `json:"query" jsonschema:"words to find in the text of saved PDFs"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchLocalOutput is the output schema for the search_local tool.
type SearchLocalOutput struct {
	Results []LocalResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// LocalResultOutput represents a single local search hit.
type LocalResultOutput struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors,omitempty"`
	Year    string   `json:"year,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
}

// IndexDocumentInput is the input schema for the index_document tool.
type IndexDocumentInput struct {
	ID   string `json:"id" jsonschema:"id of an existing library record"`
	Path string `json:"path" jsonschema:"local path of the file to attach"`
}

// IndexDocumentOutput is the output schema for the index_document tool.
type IndexDocumentOutput struct {
	ID      string `json:"id"`
	IsPDF   bool   `json:"is_pdf"`
	Indexed bool   `json:"indexed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_all",
		Description: "Search academic, museum and literary sources on Persian gardens at once",
	}, s.handleSearchAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_local",
		Description: "Search the full text of PDFs saved in the local library",
	}, s.handleSearchLocal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_document",
		Description: "Attach a local file to a library record and index it if it is a PDF",
	}, s.handleIndexDocument)
}

// handleSearchAll handles the search_all tool invocation.
func (s *Server) handleSearchAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchAllInput,
) (*mcp.CallToolResult, SearchAllOutput, error) {
	period, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return nil, SearchAllOutput{}, fmt.Errorf("period %q: %w", input.Period, err)
	}
	topic, err := domain.ParseTopic(input.Topic)
	if err != nil {
		return nil, SearchAllOutput{}, fmt.Errorf("topic %q: %w", input.Topic, err)
	}

	results, err := s.ports.Search.SearchAll(ctx, input.Query, domain.SearchFilters{
		Period:        period,
		Topic:         topic,
		GardenContext: input.Garden,
	})
	if err != nil {
		return nil, SearchAllOutput{}, err
	}

	output := SearchAllOutput{
		Papers:     nonNil(results.Papers),
		Art:        nonNil(results.Art),
		Literature: nonNil(results.Literature),
	}
	for _, o := range results.Outcomes {
		if o.Failed() {
			output.Failed = append(output.Failed, o.Source)
		}
	}
	return nil, output, nil
}

// handleSearchLocal handles the search_local tool invocation.
func (s *Server) handleSearchLocal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchLocalInput,
) (*mcp.CallToolResult, SearchLocalOutput, error) {
	records, err := s.ports.Library.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchLocalOutput{}, err
	}

	output := SearchLocalOutput{
		Results: make([]LocalResultOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Results[i] = LocalResultOutput{
			ID:      records[i].ID,
			Title:   records[i].Title,
			Authors: records[i].Authors,
			Year:    records[i].Year,
		}
		if s.ports.Index == nil {
			continue
		}
		snippet, err := s.ports.Index.Snippet(ctx, records[i].ID, input.Query)
		if err != nil {
			logger.Debug("mcp: no snippet for %s: %v", records[i].ID, err)
			continue
		}
		output.Results[i].Snippet = snippet
	}
	return nil, output, nil
}

// handleIndexDocument handles the index_document tool invocation.
func (s *Server) handleIndexDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexDocumentInput,
) (*mcp.CallToolResult, IndexDocumentOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, IndexDocumentOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	res, err := s.ports.Library.AttachFile(ctx, input.ID, data)
	if err != nil {
		return nil, IndexDocumentOutput{}, err
	}

	return nil, IndexDocumentOutput{ID: input.ID, IsPDF: res.IsPDF, Indexed: res.Indexed}, nil
}

// nonNil keeps empty groups as [] rather than null in tool output.
func nonNil(results []domain.SearchResult) []domain.SearchResult {
	if results == nil {
		return []domain.SearchResult{}
	}
	return results
}

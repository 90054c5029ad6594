package mcp

import (
	"context"

	"github.com/custodia-labs/pardis/internal/core/domain"
	"github.com/custodia-labs/pardis/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.FederatedSearchService.
type mockSearchService struct {
	results *domain.FederatedResults
	err     error

	query   string
	filters domain.SearchFilters
}

func (m *mockSearchService) SearchAll(
	_ context.Context,
	query string,
	filters domain.SearchFilters,
) (*domain.FederatedResults, error) {
	m.query = query
	m.filters = filters
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return &domain.FederatedResults{}, nil
	}
	return m.results, nil
}

func (m *mockSearchService) Sources() []string {
	return []string{"semantic_scholar", "met"}
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	records []domain.LibraryRecord
	record  *domain.LibraryRecord
	attach  *driving.AttachResult
	err     error

	attachedID   string
	attachedData []byte
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.LibraryRecord, error) {
	return m.records, m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.LibraryRecord, error) {
	return m.record, m.err
}

func (m *mockLibraryService) Filter(_ context.Context, _ string) ([]domain.LibraryRecord, error) {
	return m.records, m.err
}

func (m *mockLibraryService) Search(_ context.Context, _ string, _ int) ([]domain.LibraryRecord, error) {
	return m.records, m.err
}

func (m *mockLibraryService) SaveResult(
	_ context.Context,
	_ domain.SearchResult,
	_ []string,
) (*domain.LibraryRecord, error) {
	return m.record, m.err
}

func (m *mockLibraryService) Add(_ context.Context, _ domain.LibraryRecord) (*domain.LibraryRecord, error) {
	return m.record, m.err
}

func (m *mockLibraryService) Update(_ context.Context, _ domain.LibraryRecord) (*domain.LibraryRecord, error) {
	return m.record, m.err
}

func (m *mockLibraryService) AddNote(_ context.Context, _, _ string, _ *int) (*domain.Note, error) {
	return nil, m.err
}

func (m *mockLibraryService) AttachFile(_ context.Context, id string, data []byte) (*driving.AttachResult, error) {
	m.attachedID = id
	m.attachedData = data
	if m.err != nil {
		return nil, m.err
	}
	return m.attach, nil
}

func (m *mockLibraryService) GetFile(_ context.Context, _ string) ([]byte, error) {
	return nil, m.err
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) Export(_ context.Context, _ bool) ([]byte, error) {
	return nil, m.err
}

func (m *mockLibraryService) Import(_ context.Context, _ []byte) (int, error) {
	return 0, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	snippets map[string]string
}

func (m *mockIndexService) IndexDocument(_ context.Context, _, _ string, _ []string, _ []byte) (bool, error) {
	return true, nil
}

func (m *mockIndexService) SearchLocal(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, nil
}

func (m *mockIndexService) Snippet(_ context.Context, id, _ string) (string, error) {
	s, ok := m.snippets[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return s, nil
}

func (m *mockIndexService) Rehydrate(_ context.Context) (int, error) {
	return 0, nil
}

func (m *mockIndexService) Forget(_ context.Context, _ string) error {
	return nil
}

func (m *mockIndexService) Refresh(_ context.Context, _, _ string, _ []string) error {
	return nil
}

func (m *mockIndexService) Remove(_ string) {}

func (m *mockIndexService) Size() int {
	return len(m.snippets)
}

// Ensure mocks implement the interfaces.
var (
	_ driving.FederatedSearchService = (*mockSearchService)(nil)
	_ driving.LibraryService         = (*mockLibraryService)(nil)
	_ driving.IndexService           = (*mockIndexService)(nil)
)

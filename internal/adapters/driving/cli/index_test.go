package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexRebuild(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	addIndexedRecord(t, "Fin", "turquoise channels")
	addIndexedRecord(t, "Eram", "cypress avenue")

	out, err := runCommand(t, "index", "rebuild")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 2 documents")
	assert.Equal(t, 2, indexService.Size())
}

func TestIndexStatus(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	addIndexedRecord(t, "Fin", "turquoise channels")

	out, err := runCommand(t, "index", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents indexed: 1")
}

func TestIndex_ServiceNotConfigured(t *testing.T) {
	old := indexService
	indexService = nil
	defer func() { indexService = old }()

	_, err := runCommand(t, "index", "rebuild")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index service not configured")
}

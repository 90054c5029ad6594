package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_FromScratch(t *testing.T) {
	got, err := Pending(0)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "001_initial.up.sql", got[0].Name)
	assert.Contains(t, got[0].SQL, "CREATE TABLE")
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Version, got[i-1].Version)
	}
}

func TestPending_SkipsApplied(t *testing.T) {
	all, err := Pending(0)
	require.NoError(t, err)

	rest, err := Pending(all[len(all)-1].Version)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

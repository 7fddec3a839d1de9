package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCatalogIsValid(t *testing.T) {
	products := sampleCatalog()
	require.NotEmpty(t, products)

	featured := 0
	for i := range products {
		assert.NoError(t, products[i].Validate(), products[i].Name)
		if products[i].IsFeatured {
			featured++
		}
	}
	assert.Positive(t, featured)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["seed"])
	assert.True(t, names["create-admin"])
}


package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

func TestOptionsCmd_Use(t *testing.T) {
	assert.Equal(t, "options [model-id]", optionsCmd.Use)
}

func TestOptionsCmd_Short(t *testing.T) {
	assert.Equal(t, "List options relevant to a base model", optionsCmd.Short)
}

func TestOptionsCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"options"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestOptionsCmd_ListsOptions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configurationService = &mockConfigurationService{
		options: []domain.OptionInfo{
			{
				Option:   domain.Product{ID: "finisher-a1", Name: "Staple Finisher A1"},
				Status:   domain.CompatibilityCompatible,
				Requires: []string{"bridge-b2"},
			},
			{
				Option:        domain.Product{ID: "tray-c1", Name: "Cassette Tray C1"},
				Status:        domain.CompatibilityUnknown,
				ConflictsWith: []string{"tray-c2"},
			},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"options", "ir-adv-4545"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "finisher-a1")
	assert.Contains(t, out, "compatible")
	assert.Contains(t, out, "requires:  bridge-b2")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "conflicts: tray-c2")
}

func TestOptionsCmd_NoOptions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"options", "ir-adv-4545"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No options found")
}

func TestOptionsCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configurationService = &mockConfigurationService{
		options: []domain.OptionInfo{
			{Option: domain.Product{ID: "finisher-a1"}, Status: domain.CompatibilityCompatible},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"options", "--json", "ir-adv-4545"})
	defer func() {
		rootCmd.SetArgs(nil)
		optionsJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"finisher-a1\"")
}

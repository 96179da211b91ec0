package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
)

func TestValidateCmd_Use(t *testing.T) {
	assert.Equal(t, "validate [model-id] [option-id...]", validateCmd.Use)
}

func TestValidateCmd_Short(t *testing.T) {
	assert.Equal(t, "Validate an option configuration against a base model", validateCmd.Short)
}

func TestValidateCmd_RequiresModelArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"validate"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestValidateCmd_ValidConfiguration(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"validate", "ir-adv-4545", "finisher-a1", "tray-c1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Configuration is valid")

	mock := configurationService.(*mockConfigurationService)
	assert.Equal(t, "ir-adv-4545", mock.lastBaseID)
	assert.Equal(t, []string{"finisher-a1", "tray-c1"}, mock.lastSelected)
}

func TestValidateCmd_ReportsViolations(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configurationService = &mockConfigurationService{
		result: &domain.ValidationResult{
			IsValid: false,
			Violations: []domain.Violation{
				{Kind: domain.ViolationMissingDependency, Message: "finisher-a1 requires bridge-b2"},
			},
			SuggestedAdditions: []string{"bridge-b2"},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"validate", "ir-adv-4545", "finisher-a1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	// Violations are findings, not command failures.
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "NOT valid")
	assert.Contains(t, buf.String(), "missing_dependency")
	assert.Contains(t, buf.String(), "bridge-b2")
}

func TestValidateCmd_UnknownProduct(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configurationService = &mockConfigurationService{err: domain.ErrUnknownProduct}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"validate", "nonexistent"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestValidateCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"validate", "--json", "ir-adv-4545"})
	defer func() {
		rootCmd.SetArgs(nil)
		validateJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"IsValid\": true")
}

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshCmd_Use(t *testing.T) {
	assert.Equal(t, "refresh", refreshCmd.Use)
}

func TestRefreshCmd_RebuildsProjections(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"refresh"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Projections rebuilt")
	assert.Contains(t, buf.String(), "1.5s")

	mock := projectionService.(*mockProjectionService)
	assert.True(t, mock.refreshed)
}

func TestRefreshCmd_RefreshFails(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	projectionService = &mockProjectionService{refreshErr: errors.New("store unavailable")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"refresh"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh failed")
}

package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMatches(t *testing.T) {
	tests := []struct {
		executable string
		exeName    string
		want       bool
	}{
		{"valheim.exe", "valheim.exe", true},
		{"Valheim.EXE", "valheim.exe", true},
		{"Risk of Rain 2.", "Risk of Rain 2.exe", true},
		{"Risk of Rain 2", "Risk of Rain 2.exe", false},
		{"bash", "valheim.exe", false},
		{"DSPGAME.exe", "DSPGAME.exe", true},
	}
	for _, tt := range tests {
		t.Run(tt.executable+"/"+tt.exeName, func(t *testing.T) {
			assert.Equal(t, tt.want, processMatches(tt.executable, tt.exeName))
		})
	}
}

func TestIsProcessRunning_Self(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	running, err := IsProcessRunning(filepath.Base(self))
	require.NoError(t, err)
	assert.True(t, running)

	running, err = IsProcessRunning("modlink-no-such-process.exe")
	require.NoError(t, err)
	assert.False(t, running)

	running, err = IsProcessRunning("")
	require.NoError(t, err)
	assert.False(t, running)
}

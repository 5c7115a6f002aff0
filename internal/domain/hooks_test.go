package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookConfig_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		config   HookConfig
		expected bool
	}{
		{"all empty", HookConfig{}, true},
		{"has before", HookConfig{Before: "/path/to/script"}, false},
		{"has after", HookConfig{After: "/path/to/script"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsEmpty())
		})
	}
}

func TestGameHooks_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		hooks    GameHooks
		expected bool
	}{
		{"all empty", GameHooks{}, true},
		{"has link hook", GameHooks{Link: HookConfig{Before: "/path"}}, false},
		{"has reset hook", GameHooks{Reset: HookConfig{After: "/path"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.hooks.IsEmpty())
		})
	}
}

func TestGame_ManagedPath(t *testing.T) {
	tests := []struct {
		name string
		game Game
		want string
	}{
		{"derived from data folder", Game{DataFolder: "Risk of Rain 2_Data"}, "Risk of Rain 2_Data/Managed"},
		{"explicit subpath wins", Game{DataFolder: "x_Data", ManagedSubpath: "BepInEx/cache"}, "BepInEx/cache"},
		{"nothing configured", Game{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.game.ManagedPath())
		})
	}
}

package domain

// HookConfig defines scripts run around a single operation (link or reset)
type HookConfig struct {
	Before string `yaml:"before,omitempty"`
	After  string `yaml:"after,omitempty"`
}

// IsEmpty returns true if no hooks are configured
func (h HookConfig) IsEmpty() bool {
	return h.Before == "" && h.After == ""
}

// GameHooks contains all hooks for a game
type GameHooks struct {
	Link  HookConfig `yaml:"link,omitempty"`
	Reset HookConfig `yaml:"reset,omitempty"`
}

// IsEmpty returns true if no hooks are configured
func (h GameHooks) IsEmpty() bool {
	return h.Link.IsEmpty() && h.Reset.IsEmpty()
}

// Package trigger hands URIs such as steam://validate/<appid> to the desktop.
package trigger

import (
	"errors"
	"fmt"

	"github.com/skratchdot/open-golang/open"
)

// OpenFunc starts the handler for a URI without waiting for it to exit
type OpenFunc func(uri string) error

// Steam asks the Steam client to validate a game's files
type Steam struct {
	open OpenFunc
}

// NewSteam creates a Steam trigger backed by the desktop's URI handler
func NewSteam() *Steam {
	return &Steam{open: open.Start}
}

// NewSteamWith creates a Steam trigger that hands URIs to fn
func NewSteamWith(fn OpenFunc) *Steam {
	return &Steam{open: fn}
}

// ValidateURI returns the steam:// URI that validates appID
func ValidateURI(appID string) string {
	return "steam://validate/" + appID
}

// Validate opens steam://validate/<appID>. It returns once the handler has
// been started; the validation outcome is never observed.
func (s *Steam) Validate(appID string) error {
	if appID == "" {
		return errors.New("no Steam app ID configured")
	}
	if err := s.open(ValidateURI(appID)); err != nil {
		return fmt.Errorf("opening %s: %w", ValidateURI(appID), err)
	}
	return nil
}

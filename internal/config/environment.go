package config

import (
	"fmt"
	"strconv"
)

// Environment identifies one built-in environment: a version/profile pair and,
// optionally, the stage whose built-ins sit on top of the shared ones.
type Environment struct {
	Version int
	Profile string
	Stage   string
}

// Common returns the environment with the stage dropped; it keys the shared level.
func (e Environment) Common() Environment {
	return Environment{Version: e.Version, Profile: e.Profile}
}

func (e Environment) String() string {
	s := strconv.Itoa(e.Version)
	if e.Profile != ProfileNone {
		s += " " + e.Profile
	}
	if e.Stage != "" {
		s += " (" + e.Stage + ")"
	}
	return s
}

// Validate checks the profile and stage spellings.
func (e Environment) Validate() error {
	if e.Version <= 0 {
		return fmt.Errorf("invalid version %d", e.Version)
	}
	if e.Profile != ProfileNone && !contains(Profiles, e.Profile) {
		return fmt.Errorf("unknown profile %q", e.Profile)
	}
	if e.Stage != "" && !contains(Stages, e.Stage) {
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

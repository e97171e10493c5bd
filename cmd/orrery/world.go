package main

import (
	"fmt"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/orbit"
)

// loadWorld resolves ref to a system and builds its world.
func loadWorld(ref string) (*config.System, *orbit.World, error) {
	sys, err := config.LoadSystem(ref)
	if err != nil {
		return nil, nil, fmt.Errorf("loading system %q: %w", ref, err)
	}

	w, err := orbit.NewWorld(sys)
	if err != nil {
		return nil, nil, fmt.Errorf("building system %q: %w", ref, err)
	}
	return sys, w, nil
}

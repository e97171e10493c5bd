package main

import (
	"log"
	"strings"

	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/view"
)

// progressSystem logs every body's state once per interval.
type progressSystem struct {
	World  *orbit.World
	Logger *log.Logger
	Every  uint64
}

func (p *progressSystem) Execute(frame *sim.Frame) {
	if p.Every == 0 || frame.Tick%p.Every != 0 {
		return
	}

	lines := make([]string, 0, p.World.BodyCount())
	for _, b := range p.World.Bodies() {
		lines = append(lines, view.Describe(b))
	}
	p.Logger.Printf("tick %d\n  %s", frame.Tick, strings.Join(lines, "\n  "))
}

package sim

// Frame is handed to every system during a tick. The scheduler reuses a single
// Frame, so systems must not retain it past Execute.
type Frame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
}

func newFrame() Frame {
	return Frame{Commands: newCommands()}
}

package sim

// Commands buffers work that has to run after every system of a tick has
// executed, such as presenting the state the tick produced.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the tick's systems have all finished.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs all queued commands in the order they were queued, resetting the
// buffer state. Commands deferred while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}

	clear(c.defers)
	c.defers = c.defers[:0]
}

package sim

// System represents a behavior that runs once per tick. Systems are executed
// by a Scheduler in registration order and can keep custom state fields that
// persist between ticks.
type System interface {
	Execute(frame *Frame)
}

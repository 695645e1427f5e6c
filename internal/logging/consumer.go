package logging

// Consumer receives drained log events (spec 4.A, "add-consumer/
// remove-consumer"). OnEvent must not retain e beyond the call — the event
// is returned to the pool immediately after every consumer has observed it.
// A panic or error from OnEvent is caught by the core and routed to
// OnError; it never blocks the queue or affects other consumers.
type Consumer interface {
	OnEvent(e *MutableLogEvent)
	OnError(e *MutableLogEvent, err error)
	OnRemoved()
}

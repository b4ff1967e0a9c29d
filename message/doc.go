// Package message sends and receives typed messages between scripts and the engine.
//
// A Message is self-describing: it carries the Meta of the Go type it was built from, the
// provenance of its delivery and the payload as a generic tree. Receivers probe the meta
// before committing to a decode:
//
//	for _, m := range message.Take() {
//		handled, err := message.Handle(m, func(e message.ButtonEvent) error {
//			return doors.Toggle(e.CockpitIndex)
//		})
//		...
//	}
//
// The payload tree is independent of the binary codec used for the boundary. A Message is
// encoded by ffi as {meta, source, value}; the value is never a codec buffer itself.
//
// Meta equality is structural and includes Bus: the same type on two buses is two
// different message types.
package message

package message

import (
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// Send wraps v in a Message and sends it to targets. Delivery is fire-and-forget.
func Send(v Type, targets ...Target) error {
	m, err := New(v)
	if err != nil {
		return err
	}
	m.Send(targets...)
	return nil
}

// Send hands the message to the host for delivery to targets.
// The message and the target list travel as two buffers that are freed once the host
// call returns.
func (m *Message) Send(targets ...Target) {
	if targets == nil {
		targets = []Target{}
	}

	mem := sys.Memory()
	scope := ffi.NewScope()
	defer scope.Release()

	t := scope.Encode(mem, targets)
	msg := scope.Encode(mem, m)
	sys.Imports().Send(t, msg)
}

// Take returns every message delivered to this script since the last call. The batch is
// decoded in one piece; a malformed entry is a protocol defect and panics.
func Take() []*Message {
	mem := sys.Memory()
	h := sys.Imports().Take()
	if h.IsEmpty() {
		ffi.View(mem, h).Reclaim()
		return []*Message{}
	}

	msgs := ffi.Consume[[]*Message](mem, h)
	if msgs == nil {
		return []*Message{}
	}
	return msgs
}

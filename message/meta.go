package message

import (
	"github.com/lotus-sim/lotus-script-go/vehicle"
)

// Meta identifies a message type. The (Namespace, Identifier) pair must be unique per
// logical type; two Go types declaring the same Meta are indistinguishable to receivers.
type Meta struct {
	Namespace  string `json:"namespace"`
	Identifier string `json:"identifier"`
	Bus        string `json:"bus,omitempty"`
}

// NewMeta returns a Meta without a bus.
func NewMeta(namespace, identifier string) Meta {
	return Meta{Namespace: namespace, Identifier: identifier}
}

// OnBus returns a copy of m bound to bus.
func (m Meta) OnBus(bus string) Meta {
	m.Bus = bus
	return m
}

func (m Meta) String() string {
	s := m.Namespace + ":" + m.Identifier
	if m.Bus != "" {
		s += "@" + m.Bus
	}
	return s
}

// Type is implemented by every Go type that can travel in a Message. MessageMeta must be
// declared on the value receiver and return a constant.
type Type interface {
	MessageMeta() Meta
}

// Source records how a message reached its receiver.
type Source struct {
	// Coupling is the coupling the message crossed, nil when it stayed in the vehicle.
	Coupling *vehicle.Coupling `json:"coupling"`
}

// FromCoupling returns the source of a message that crossed c.
func FromCoupling(c vehicle.Coupling) Source {
	return Source{Coupling: &c}
}

// CrossedCoupling returns the coupling the message crossed, if any.
func (s Source) CrossedCoupling() (vehicle.Coupling, bool) {
	if s.Coupling == nil {
		return 0, false
	}
	return *s.Coupling, true
}

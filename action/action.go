// Package action registers keyboard actions with the engine and reads their state.
package action

import (
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/message"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// StateKind is the press state of an action. It travels as a u8.
type StateKind uint8

const (
	None StateKind = iota
	JustPressed
	Pressed
	JustReleased
)

func (k StateKind) IsJustPressed() bool  { return k == JustPressed }
func (k StateKind) IsPressed() bool      { return k == JustPressed || k == Pressed }
func (k StateKind) IsJustReleased() bool { return k == JustReleased }
func (k StateKind) IsReleased() bool     { return k == JustReleased || k == None }

func (k StateKind) String() string {
	switch k {
	case JustPressed:
		return "just_pressed"
	case Pressed:
		return "pressed"
	case JustReleased:
		return "just_released"
	default:
		return "none"
	}
}

// State is the state of an action and the cockpit it was triggered from.
type State struct {
	Kind         StateKind `json:"kind"`
	CockpitIndex *uint32   `json:"cockpit_index"`
}

// Register describes an action the script wants bound to a key.
type Register struct {
	ID         string  `json:"id"`
	DefaultKey KeyCode `json:"default_key"`
}

// Event is sent by the engine when a registered action changes state.
type Event struct {
	Name  string `json:"name"`
	State State  `json:"state"`
}

func (Event) MessageMeta() message.Meta { return message.NewMeta("builtin", "action_event") }

// RegisterAll registers every action with the engine.
func RegisterAll(actions []Register) {
	mem := sys.Memory()
	for _, a := range actions {
		obj := ffi.Encode(mem, a)
		sys.Imports().Register(obj.Handle())
		obj.Release()
	}
}

// GetState returns the current state of the named action. Unregistered actions report None.
func GetState(name string) State {
	mem := sys.Memory()
	obj := ffi.Encode(mem, name)
	defer obj.Release()

	return ffi.Consume[State](mem, sys.Imports().State(obj.Handle()))
}

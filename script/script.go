// Package script drives a user script through the engine's lifecycle.
//
// The engine calls four entry points: init once, then every tick "tick" followed by
// "late_tick", which delivers the messages received since the last tick. A Runner owns
// the script value and forwards each entry point to it:
//
//	type Doors struct{ script.Base }
//
//	func (d *Doors) Tick() { ... }
//
//	func init() { script.Register(&Doors{}) }
//
// Built for wasip1 the package exports the entry points itself; natively the Runner is
// driven by a host directly.
package script

import (
	"github.com/lotus-sim/lotus-script-go/action"
	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/message"
	"github.com/lotus-sim/lotus-script-go/sys"
	"github.com/lotus-sim/lotus-script-go/vars"
)

// Script is implemented by user scripts. Embed Base for no-op defaults.
type Script interface {
	Init()
	Tick()
	OnMessage(m *message.Message)
}

// ActionProvider is implemented by scripts that bind keyboard actions.
type ActionProvider interface {
	Actions() []action.Register
}

// Base provides no-op lifecycle methods.
type Base struct{}

func (Base) Init()                      {}
func (Base) Tick()                      {}
func (Base) OnMessage(*message.Message) {}

// Runner forwards lifecycle calls to one script.
type Runner struct {
	script      Script
	initialized bool
	ticks       uint64
}

// NewRunner wraps s.
func NewRunner(s Script) *Runner {
	return &Runner{script: s}
}

// Script returns the wrapped script.
func (r *Runner) Script() Script { return r.script }

// Ticks returns how many ticks the runner has driven.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Init initializes the script. Repeated calls are ignored.
func (r *Runner) Init() {
	if r.initialized {
		return
	}
	r.initialized = true
	r.script.Init()
}

// RegisterActions registers the script's actions, if it declares any.
func (r *Runner) RegisterActions() {
	if p, ok := r.script.(ActionProvider); ok {
		action.RegisterAll(p.Actions())
	}
}

// Tick advances the script by one tick.
func (r *Runner) Tick() {
	r.ticks++
	r.script.Tick()
}

// LateTick hands every pending message to the script, in delivery order.
func (r *Runner) LateTick() {
	for _, m := range message.Take() {
		r.script.OnMessage(m)
	}
}

var registered *Runner

// Register installs s as the script driven by the exported entry points.
func Register(s Script) *Runner {
	registered = NewRunner(s)
	return registered
}

// Current returns the registered runner.
func Current() *Runner {
	if registered == nil {
		panic(errors.NotInitialized(errors.PhaseRuntime, "script"))
	}
	return registered
}

// PublicVars encodes the declared public variables as (name, type) pairs and hands the
// buffer to the engine, which frees it.
func PublicVars() ffi.Handle {
	return ffi.Encode(sys.Memory(), vars.Pairs(vars.PublicDecls())).Forget()
}

// GlobalVars encodes the declared global variables like PublicVars.
func GlobalVars() ffi.Handle {
	return ffi.Encode(sys.Memory(), vars.Pairs(vars.GlobalDecls())).Forget()
}

// IsRC reports whether the object the script runs for is remote controlled.
func IsRC() bool {
	return sys.Imports().IsRC()
}

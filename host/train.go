package host

import (
	"math/rand/v2"

	"go.uber.org/zap"

	lotus "github.com/lotus-sim/lotus-script-go"
	"github.com/lotus-sim/lotus-script-go/action"
	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/message"
	"github.com/lotus-sim/lotus-script-go/resource"
	"github.com/lotus-sim/lotus-script-go/vehicle"
)

const (
	frontSide = int(vehicle.Front)
	rearSide  = int(vehicle.Rear)
)

// VehicleState is the physical state the vehicle imports report.
type VehicleState struct {
	// Missing makes every query report the vehicle as not found.
	Missing      bool
	Bogies       []BogieState
	Pantographs  []PantographState
	Velocity     float32
	Acceleration float32
}

// BogieState is one bogie and its axles.
type BogieState struct {
	Axles          []AxleState
	RailBrakeForce float32
}

// AxleState is the track under an axle and the forces applied to it.
type AxleState struct {
	InverseRadius float32
	RailQuality   vehicle.RailQuality
	Surface       vehicle.SurfaceType
	TractionForce float32
	BrakeForce    float32
}

// PantographState is the contact wire above a pantograph.
type PantographState struct {
	Height  float32
	Voltage float32
}

// Vehicle is one vehicle of the train with its script slots and variables.
type Vehicle struct {
	engine  *Engine
	vars    *varStore
	slots   []*Slot
	State   VehicleState
	index   int
	coupled [2]bool
}

// Index returns the position in the train, 0 at the front.
func (v *Vehicle) Index() int { return v.index }

// Slots returns the vehicle's slots in insertion order.
func (v *Vehicle) Slots() []*Slot { return v.slots }

// IsCoupled reports whether a vehicle is attached at c.
func (v *Vehicle) IsCoupled(c vehicle.Coupling) bool { return v.coupled[c] }

// Var returns a vehicle variable as stored, or nil.
func (v *Vehicle) Var(name string) any { return v.vars.get(name) }

// SetVar sets a vehicle variable. Supported types are int64, float64, string, bool and
// content.ID.
func (v *Vehicle) SetVar(name string, value any) { v.vars.set(name, value) }

func (v *Vehicle) neighbor(c vehicle.Coupling) *Vehicle {
	if !v.coupled[c] {
		return nil
	}
	i := v.index + 1
	if c == vehicle.Front {
		i = v.index - 1
	}
	if i < 0 || i >= len(v.engine.vehicles) {
		return nil
	}
	return v.engine.vehicles[i]
}

func (v *Vehicle) axle(bogie, axle uint32) (*AxleState, uint32) {
	if v.State.Missing {
		return nil, vehicle.VehicleNotFound.Code()
	}
	if int(bogie) >= len(v.State.Bogies) {
		return nil, vehicle.BogieNotFound.Code()
	}
	b := &v.State.Bogies[bogie]
	if int(axle) >= len(b.Axles) {
		return nil, vehicle.AxleNotFound.Code()
	}
	return &b.Axles[axle], 0
}

func (v *Vehicle) pantograph(i uint32) (*PantographState, uint32) {
	if v.State.Missing {
		return nil, vehicle.VehicleNotFound.Code()
	}
	if int(i) >= len(v.State.Pantographs) {
		return nil, vehicle.PantographNotFound.Code()
	}
	return &v.State.Pantographs[i], 0
}

// ModuleSlot identifies the module slot a script is mounted on.
type ModuleSlot struct {
	CockpitIndex      int32
	IndexInClassGroup int32
	Index             int32
}

// SlotConfig describes a script slot.
type SlotConfig struct {
	Name   string
	Parent *Slot
	// Cockpit is the cockpit group, -1 for none.
	Cockpit int32
	// Module is set for scripts running on a module slot.
	Module *ModuleSlot
	RC     bool
}

type actionBinding struct {
	key   action.KeyCode
	state action.State
}

// Slot is one script instance on a vehicle. It implements sys.Host for its guest.
type Slot struct {
	vehicle    *Vehicle
	parent     *Slot
	guest      Guest
	mem        lotus.Memory
	rng        *rand.Rand
	textures   *resource.Table
	actions    map[string]*actionBinding
	log        *zap.Logger
	module     *ModuleSlot
	name       string
	children   []*Slot
	inbox      []*message.Message
	applied    map[string]uint32
	ticksAlive uint64
	cockpit    int32
	rc         bool
}

// AddSlot adds a script slot to the vehicle.
func (v *Vehicle) AddSlot(cfg SlotConfig) *Slot {
	s := &Slot{
		vehicle:  v,
		parent:   cfg.Parent,
		name:     cfg.Name,
		cockpit:  cfg.Cockpit,
		module:   cfg.Module,
		rc:       cfg.RC,
		textures: resource.NewTable(),
		actions:  make(map[string]*actionBinding),
		applied:  make(map[string]uint32),
		log:      Logger().With(zap.String("slot", cfg.Name), zap.Int("vehicle", v.index)),
	}
	s.seed(v.engine.cfg.Seed)
	s.textures.Subscribe(s)
	if cfg.Parent != nil {
		cfg.Parent.children = append(cfg.Parent.children, s)
	}
	v.slots = append(v.slots, s)
	return s
}

// Name returns the slot name.
func (s *Slot) Name() string { return s.name }

// Vehicle returns the vehicle the slot belongs to.
func (s *Slot) Vehicle() *Vehicle { return s.vehicle }

// Guest returns the loaded guest, or nil.
func (s *Slot) Guest() Guest { return s.guest }

// Inbox returns the messages queued for the next late_tick.
func (s *Slot) Inbox() []*message.Message { return s.inbox }

// Load attaches a guest. The guest's memory becomes the slot's memory.
func (s *Slot) Load(g Guest) {
	s.guest = g
	s.mem = g.Memory()
}

// Press marks an action as just pressed and sends the matching action event.
func (s *Slot) Press(id string, cockpit *uint32) {
	s.setAction(id, action.JustPressed, cockpit)
}

// Release marks an action as just released and sends the matching action event.
func (s *Slot) Release(id string) {
	s.setAction(id, action.JustReleased, nil)
}

func (s *Slot) setAction(id string, kind action.StateKind, cockpit *uint32) {
	b, ok := s.actions[id]
	if !ok {
		s.log.Debug("action not registered", zap.String("action", id))
		return
	}
	b.state = action.State{Kind: kind, CockpitIndex: cockpit}
	if err := s.vehicle.engine.Deliver(s, action.Event{Name: id, State: b.state}); err != nil {
		s.log.Warn("deliver action event", zap.Error(err))
	}
}

// Actions returns the registered action ids and their default keys.
func (s *Slot) Actions() map[string]action.KeyCode {
	out := make(map[string]action.KeyCode, len(s.actions))
	for id, b := range s.actions {
		out[id] = b.key
	}
	return out
}

// AppliedTextures maps game texture names to the script texture shown on them.
func (s *Slot) AppliedTextures() map[string]uint32 { return s.applied }

func (s *Slot) endTick() {
	for _, b := range s.actions {
		switch b.state.Kind {
		case action.JustPressed:
			b.state.Kind = action.Pressed
		case action.JustReleased:
			b.state = action.State{}
		}
	}
	s.textures.Each(func(_ resource.Handle, _ resource.Kind, v any) bool {
		v.(*texture).flush(s.vehicle.engine)
		return true
	})
}

func (s *Slot) seed(seed uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *Slot) wrap(export string, err error) error {
	return errors.New(errors.PhaseRuntime, errors.KindHandler).
		Detail("slot %q: %s", s.name, export).
		Cause(err).
		Build()
}

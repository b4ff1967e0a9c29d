package host

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/font"
	"github.com/lotus-sim/lotus-script-go/geom"
	"github.com/lotus-sim/lotus-script-go/gizmo"
	"github.com/lotus-sim/lotus-script-go/message"
)

// Engine drives a train of vehicles tick by tick. It is used from one goroutine.
type Engine struct {
	cfg      Config
	vehicles []*Vehicle
	fonts    map[content.ID]*fontAsset
	preloads []content.ID
	gizmos   []gizmo.Gizmo
	mouse    geom.Vec2
	gameTime time.Time
	delta    float64
	tick     uint64
}

type fontAsset struct {
	props   font.Properties
	readyAt uint64
}

// NewEngine returns an engine with an empty train.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:      cfg,
		fonts:    make(map[content.ID]*fontAsset),
		gameTime: cfg.StartTime,
		delta:    cfg.Delta,
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// AddVehicle appends a vehicle at the rear of the train. It is not coupled.
func (e *Engine) AddVehicle(state VehicleState) *Vehicle {
	v := &Vehicle{
		engine: e,
		index:  len(e.vehicles),
		State:  state,
		vars:   newVarStore(),
	}
	e.vehicles = append(e.vehicles, v)
	return v
}

// Vehicles returns the train from front to rear.
func (e *Engine) Vehicles() []*Vehicle { return e.vehicles }

// Couple joins the rear of vehicle i to the front of vehicle i+1.
func (e *Engine) Couple(i int) {
	e.setCoupled(i, true)
}

// Uncouple separates vehicle i from vehicle i+1.
func (e *Engine) Uncouple(i int) {
	e.setCoupled(i, false)
}

func (e *Engine) setCoupled(i int, on bool) {
	if i < 0 || i+1 >= len(e.vehicles) {
		return
	}
	e.vehicles[i].coupled[rearSide] = on
	e.vehicles[i+1].coupled[frontSide] = on
}

// Slots returns every slot of the train in vehicle order.
func (e *Engine) Slots() []*Slot {
	var out []*Slot
	for _, v := range e.vehicles {
		out = append(out, v.slots...)
	}
	return out
}

// AddFont makes a bitmap font available after it streamed in for loadTicks steps.
func (e *Engine) AddFont(id content.ID, props font.Properties, loadTicks uint64) {
	e.fonts[id] = &fontAsset{props: props, readyAt: e.tick + loadTicks}
}

func (e *Engine) loadedFont(id content.ID) (font.Properties, bool) {
	f, ok := e.fonts[id]
	if !ok || e.tick < f.readyAt {
		return font.Properties{}, false
	}
	return f.props, true
}

// Preloads returns the content ids guests asked to preload.
func (e *Engine) Preloads() []content.ID { return e.preloads }

// Gizmos returns the gizmos drawn during the last step.
func (e *Engine) Gizmos() []gizmo.Gizmo { return e.gizmos }

// SetMouseDelta sets the value reported by input.mouse_delta.
func (e *Engine) SetMouseDelta(d geom.Vec2) { e.mouse = d }

// Tick returns the number of completed steps.
func (e *Engine) Tick() uint64 { return e.tick }

// GameTime returns the current game time.
func (e *Engine) GameTime() time.Time { return e.gameTime }

// Init registers actions and initializes every loaded slot.
func (e *Engine) Init(ctx context.Context) error {
	var errs []error
	for _, s := range e.Slots() {
		if s.guest == nil {
			continue
		}
		if err := s.guest.RegisterActions(ctx); err != nil {
			errs = append(errs, s.wrap("register_actions", err))
			continue
		}
		if err := s.guest.Init(ctx); err != nil {
			errs = append(errs, s.wrap("init", err))
		}
	}
	return stderrors.Join(errs...)
}

// Step advances the simulation by one tick of delta seconds; delta <= 0 uses the
// configured default.
func (e *Engine) Step(ctx context.Context, delta float64) error {
	if delta <= 0 {
		delta = e.cfg.Delta
	}
	e.delta = delta
	e.gizmos = e.gizmos[:0]

	slots := e.Slots()
	var errs []error
	for _, s := range slots {
		if s.guest == nil {
			continue
		}
		s.ticksAlive++
		if err := s.guest.Tick(ctx); err != nil {
			errs = append(errs, s.wrap("tick", err))
		}
	}
	for _, s := range slots {
		if s.guest == nil {
			continue
		}
		if err := s.guest.LateTick(ctx); err != nil {
			errs = append(errs, s.wrap("late_tick", err))
		}
	}

	for _, s := range slots {
		s.endTick()
	}
	e.tick++
	e.gameTime = e.gameTime.Add(time.Duration(delta * float64(time.Second)))

	if len(errs) > 0 {
		Logger().Warn("step finished with errors", zap.Uint64("tick", e.tick), zap.Int("errors", len(errs)))
	}
	return stderrors.Join(errs...)
}

// Deliver queues an engine-originated message for s.
func (e *Engine) Deliver(s *Slot, v message.Type) error {
	m, err := message.New(v)
	if err != nil {
		return err
	}
	s.inbox = append(s.inbox, m)
	return nil
}

// Close closes every guest.
func (e *Engine) Close(ctx context.Context) error {
	var errs []error
	for _, s := range e.Slots() {
		if s.guest != nil {
			errs = append(errs, s.guest.Close(ctx))
		}
		s.textures.Close()
	}
	return stderrors.Join(errs...)
}

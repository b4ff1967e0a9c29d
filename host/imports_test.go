package host_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lotus-sim/lotus-script-go/action"
	"github.com/lotus-sim/lotus-script-go/assets"
	"github.com/lotus-sim/lotus-script-go/clock"
	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/font"
	"github.com/lotus-sim/lotus-script-go/geom"
	"github.com/lotus-sim/lotus-script-go/gizmo"
	"github.com/lotus-sim/lotus-script-go/graphics"
	"github.com/lotus-sim/lotus-script-go/host"
	"github.com/lotus-sim/lotus-script-go/input"
	"github.com/lotus-sim/lotus-script-go/log"
	"github.com/lotus-sim/lotus-script-go/message"
	"github.com/lotus-sim/lotus-script-go/random"
	"github.com/lotus-sim/lotus-script-go/resource"
	"github.com/lotus-sim/lotus-script-go/script"
	"github.com/lotus-sim/lotus-script-go/slot"
	"github.com/lotus-sim/lotus-script-go/vars"
	"github.com/lotus-sim/lotus-script-go/vehicle"
)

// single loads s alone into a fresh engine and returns its loopback.
func single(t *testing.T, state host.VehicleState, cfg host.SlotConfig, s script.Script) (*host.Engine, *host.Vehicle, *host.Loopback) {
	t.Helper()
	e := newEngine(t)
	v := e.AddVehicle(state)
	sl := v.AddSlot(cfg)
	return e, v, host.NewLoopback(sl, s)
}

func TestVars_RoundTrip(t *testing.T) {
	_, v, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "vars"}, &script.Base{})
	v.SetVar("limit", 3.5)
	v.SetVar("door", content.New(1000, 42))

	require.NoError(t, lb.Do(func() {
		vars.SetI64("speed", 12)
		vars.SetString("dest", "Hbf")
		vars.SetBool("open", true)
		vars.New[float32]("ratio").Set(0.5)

		require.Equal(t, 3.5, vars.GetF64("limit"))
		require.Equal(t, int64(0), vars.GetI64("limit"), "floats are not readable as integers")
		require.Equal(t, content.New(1000, 42), vars.GetContentID("door"))
		require.Equal(t, "", vars.GetString("missing"))
		require.Equal(t, int32(12), vars.New[int32]("speed").Get())
	}))

	require.Equal(t, int64(12), v.Var("speed"))
	require.Equal(t, "Hbf", v.Var("dest"))
	require.Equal(t, true, v.Var("open"))
	require.Equal(t, 0.5, v.Var("ratio"))
	require.Zero(t, lb.LinearMemory().InUse())
}

var speedLimit = vars.Public[float64]("speed_limit")

func TestVars_PublicDecls(t *testing.T) {
	_, v, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "decls"}, &script.Base{})

	decls, err := lb.PublicVars(context.Background())
	require.NoError(t, err)
	require.Equal(t, []vars.Decl{{Name: "speed_limit", Type: "f64"}}, decls)
	require.Zero(t, lb.LinearMemory().InUse())

	require.NoError(t, lb.Do(func() { speedLimit.Set(80) }))
	require.Equal(t, 80.0, v.Var("speed_limit"))
}

type horn struct {
	script.Base
	states []action.StateKind
	events []action.Event
}

func (h *horn) Actions() []action.Register {
	return []action.Register{{ID: "horn", DefaultKey: action.KeyH}}
}

func (h *horn) Tick() { h.states = append(h.states, action.GetState("horn").Kind) }

func (h *horn) OnMessage(m *message.Message) {
	if ev, err := message.Value[action.Event](m); err == nil {
		h.events = append(h.events, ev)
	}
}

func TestActions_PressRelease(t *testing.T) {
	e, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "horn"}, &horn{})
	h := lb.Runner().Script().(*horn)
	sl := e.Slots()[0]

	require.NoError(t, e.Init(context.Background()))
	require.Equal(t, map[string]action.KeyCode{"horn": action.KeyH}, sl.Actions())

	cockpit := uint32(1)
	sl.Press("horn", &cockpit)
	step(t, e, 2)
	sl.Release("horn")
	step(t, e, 2)

	require.Equal(t, []action.StateKind{action.JustPressed, action.Pressed, action.JustReleased, action.None}, h.states)
	require.Len(t, h.events, 2)
	require.Equal(t, "horn", h.events[0].Name)
	require.True(t, h.events[0].State.Kind.IsJustPressed())
	require.NotNil(t, h.events[0].State.CockpitIndex)
	require.Equal(t, uint32(1), *h.events[0].State.CockpitIndex)
	require.True(t, h.events[1].State.Kind.IsJustReleased())
}

func TestActions_UnregisteredIsNone(t *testing.T) {
	_, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "none"}, &script.Base{})
	require.NoError(t, lb.Do(func() {
		st := action.GetState("nope")
		require.Equal(t, action.None, st.Kind)
		require.Nil(t, st.CockpitIndex)
	}))
}

var testFont = content.New(1000, 7)

func testFontProps() font.Properties {
	return font.Properties{
		HorizontalDistance: 1,
		VerticalSize:       12,
		Letters: map[string]font.Letter{
			"a": {Character: "a", Start: 0, Width: 3},
			"b": {Character: "b", Start: 3, Width: 4},
		},
	}
}

func TestFont_PollsUntilLoaded(t *testing.T) {
	var f *font.BitmapFont
	var states []resource.State
	var width uint32
	s := &recorder{
		init: func() { f = font.Load(testFont) },
		tick: func() {
			states = append(states, f.Poll())
			if w, ok := f.TextLen("ab", 1); ok {
				width = w
			}
		},
	}
	e, _, _ := single(t, host.VehicleState{}, host.SlotConfig{Name: "font"}, s)
	e.AddFont(testFont, testFontProps(), 2)

	require.NoError(t, e.Init(context.Background()))
	step(t, e, 3)

	require.Equal(t, []resource.State{resource.Requested, resource.Requested, resource.Ready}, states)
	require.Equal(t, uint32(3+4+1*(1+1)), width)

	props, ok := f.Properties()
	require.True(t, ok)
	require.Equal(t, testFontProps(), props)
}

func TestFont_UnknownStaysRequested(t *testing.T) {
	_, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "font"}, &script.Base{})
	require.NoError(t, lb.Do(func() {
		_, ok := font.TryLoad(content.New(1, 1))
		require.False(t, ok)
	}))
	require.Zero(t, lb.LinearMemory().InUse())
}

func TestTexture_FlushWaitsForFont(t *testing.T) {
	var tex *graphics.Texture
	var flushed []bool
	s := &recorder{
		init: func() {
			tex = graphics.NewTexture(graphics.CreateOptions{Width: 4, Height: 4})
			tex.Clear(graphics.Red)
			tex.DrawRect(geom.UVec2{X: 1, Y: 1}, geom.UVec2{X: 2, Y: 2}, graphics.White)
			tex.ApplyTo("display")
			if !tex.Flush() {
				panic("flush without text must complete")
			}
			tex.DrawText(testFont, "ab", geom.UVec2{}, 0, nil)
		},
		tick: func() { flushed = append(flushed, tex.Flush()) },
	}
	e, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "tex"}, s)

	require.NoError(t, e.Init(context.Background()))
	step(t, e, 1)
	e.AddFont(testFont, testFontProps(), 0)
	step(t, e, 1)

	require.Equal(t, []bool{false, true}, flushed)
	require.Equal(t, resource.Ready, tex.State())
	require.Equal(t, map[string]uint32{"display": tex.ID()}, e.Slots()[0].AppliedTextures())

	require.NoError(t, lb.Do(func() {
		require.Equal(t, graphics.Red, tex.ReadPixel(0, 0))
		require.Equal(t, graphics.White, tex.ReadPixel(2, 2))
		require.Equal(t, graphics.Color{}, tex.ReadPixel(9, 9))
		tex.Dispose()
		require.Equal(t, resource.Unavailable, tex.State())
	}))
	require.Empty(t, e.Slots()[0].AppliedTextures())
}

func TestVehicle_Sentinels(t *testing.T) {
	state := host.VehicleState{
		Bogies: []host.BogieState{{
			Axles: []host.AxleState{{InverseRadius: 0.01, RailQuality: vehicle.FlatGroove, Surface: vehicle.Street}},
		}},
		Pantographs:  []host.PantographState{{Height: 5.5, Voltage: 600}},
		Velocity:     12.5,
		Acceleration: -0.5,
	}
	_, v, lb := single(t, state, host.SlotConfig{Name: "veh"}, &script.Base{})

	require.NoError(t, lb.Do(func() {
		r, err := vehicle.InverseRadius(0, 0)
		require.NoError(t, err)
		require.Equal(t, float32(0.01), r)

		_, err = vehicle.InverseRadius(0, 3)
		require.ErrorIs(t, err, vehicle.AxleNotFound)
		_, err = vehicle.InverseRadius(2, 0)
		require.ErrorIs(t, err, vehicle.BogieNotFound)

		_, err = vehicle.PantographHeight(1)
		require.ErrorIs(t, err, vehicle.PantographNotFound)
		volts, err := vehicle.PantographVoltage(0)
		require.NoError(t, err)
		require.Equal(t, float32(600), volts)

		axle, err := vehicle.GetAxle(0, 0)
		require.NoError(t, err)
		q, err := axle.RailQuality()
		require.NoError(t, err)
		require.Equal(t, vehicle.FlatGroove, q)
		surface, err := axle.SurfaceType()
		require.NoError(t, err)
		require.Equal(t, vehicle.Street, surface)
		axle.SetTractionForceNewton(1500)
		axle.SetBrakeForceNewton(200)
		axle.Bogie().SetRailBrakeForceNewton(50)

		_, err = vehicle.GetAxle(0, 1)
		require.ErrorIs(t, err, vehicle.AxleNotFound)
		_, err = vehicle.GetBogie(1)
		require.ErrorIs(t, err, vehicle.BogieNotFound)

		require.Equal(t, float32(12.5), vehicle.VelocityVsGround())
		require.Equal(t, float32(-0.5), vehicle.AccelerationVsGround())
	}))

	a := v.State.Bogies[0].Axles[0]
	require.Equal(t, float32(1500), a.TractionForce)
	require.Equal(t, float32(200), a.BrakeForce)
	require.Equal(t, float32(50), v.State.Bogies[0].RailBrakeForce)

	v.State.Missing = true
	require.NoError(t, lb.Do(func() {
		_, err := vehicle.InverseRadius(0, 0)
		require.ErrorIs(t, err, vehicle.VehicleNotFound)
		_, err = vehicle.PantographVoltage(0)
		require.ErrorIs(t, err, vehicle.VehicleNotFound)
		_, err = vehicle.GetBogie(0)
		require.ErrorIs(t, err, vehicle.VehicleNotFound)
	}))
}

func TestVehicle_IsCoupled(t *testing.T) {
	e := newEngine(t)
	vs := train(e, 2)
	front := host.NewLoopback(vs[0].AddSlot(host.SlotConfig{Name: "front"}), &script.Base{})
	rear := host.NewLoopback(vs[1].AddSlot(host.SlotConfig{Name: "rear"}), &script.Base{})

	require.NoError(t, front.Do(func() {
		require.True(t, vehicle.Rear.IsCoupled())
		require.False(t, vehicle.Front.IsCoupled())
	}))
	e.Uncouple(0)
	require.NoError(t, rear.Do(func() {
		require.False(t, vehicle.Front.IsCoupled())
	}))
}

func TestModuleSlot(t *testing.T) {
	e := newEngine(t)
	v := e.AddVehicle(host.VehicleState{})
	mounted := host.NewLoopback(v.AddSlot(host.SlotConfig{
		Name:   "mounted",
		Module: &host.ModuleSlot{CockpitIndex: 1, IndexInClassGroup: 2, Index: 3},
	}), &script.Base{})
	free := host.NewLoopback(v.AddSlot(host.SlotConfig{Name: "free"}), &script.Base{})

	require.NoError(t, mounted.Do(func() {
		c, ok := slot.CockpitIndex()
		require.True(t, ok)
		require.Equal(t, int32(1), c)
		g, _ := slot.IndexInClassGroup()
		require.Equal(t, int32(2), g)
		i, _ := slot.Index()
		require.Equal(t, int32(3), i)
	}))
	require.NoError(t, free.Do(func() {
		_, ok := slot.Index()
		require.False(t, ok)
	}))
}

func TestClockAndRandom(t *testing.T) {
	var ticks []uint64
	var delta float64
	var now time.Time
	s := &recorder{tick: func() {
		ticks = append(ticks, clock.TicksAlive())
		delta = clock.DeltaF64()
		now = clock.GameTime()
	}}
	e, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "clock"}, s)
	start := e.GameTime()

	require.NoError(t, e.Init(context.Background()))
	require.NoError(t, e.Step(context.Background(), 0.25))
	require.NoError(t, e.Step(context.Background(), 0.25))

	require.Equal(t, []uint64{1, 2}, ticks)
	require.Equal(t, 0.25, delta)
	require.Equal(t, start.Add(250*time.Millisecond), now)

	require.NoError(t, lb.Do(func() {
		random.Seed(42)
		a := []uint64{random.Uint64(5, 9), random.Uint64(5, 9), random.Uint64N(3)}
		random.Seed(42)
		b := []uint64{random.Uint64(5, 9), random.Uint64(5, 9), random.Uint64N(3)}
		require.Equal(t, a, b)
		for _, n := range a[:2] {
			require.GreaterOrEqual(t, n, uint64(5))
			require.LessOrEqual(t, n, uint64(9))
		}
		require.Equal(t, uint64(7), random.Uint64(7, 7))
		f := random.Float64()
		require.True(t, f >= 0 && f < 1)
		random.Uint64(0, math.MaxUint64)
		require.Panics(t, func() { random.Uint64(2, 1) })
	}))
}

func TestGizmoPreloadInput(t *testing.T) {
	e, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "misc", RC: true}, &script.Base{})
	e.SetMouseDelta(geom.Vec2{X: 1.5, Y: -2})
	id := content.New(3, 4)

	require.NoError(t, lb.Do(func() {
		require.True(t, script.IsRC())
		require.Equal(t, geom.Vec2{X: 1.5, Y: -2}, input.MouseDelta())
		assets.Preload(id)
		gizmo.Gizmo{
			Kind:  gizmo.WireSphere{Center: geom.Vec3{X: 1}, Radius: 2},
			Color: gizmo.Red,
		}.Draw()
	}))

	require.Equal(t, []content.ID{id}, e.Preloads())
	require.Len(t, e.Gizmos(), 1)
	require.Equal(t, gizmo.WireSphere{Center: geom.Vec3{X: 1}, Radius: 2}, e.Gizmos()[0].Kind)
	require.Zero(t, lb.LinearMemory().InUse())

	require.NoError(t, e.Step(context.Background(), 0))
	require.Empty(t, e.Gizmos(), "gizmos last one frame")
}

func TestLog_ForwardsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := host.Logger()
	host.SetLogger(zap.New(core))
	t.Cleanup(func() { host.SetLogger(prev) })

	_, _, lb := single(t, host.VehicleState{}, host.SlotConfig{Name: "logger"}, &script.Base{})
	require.NoError(t, lb.Do(func() {
		log.Write(log.LevelWarn, "door stuck")
		log.Infof("speed %d", 12)
	}))

	entries := logs.FilterField(zap.String("slot", "logger")).AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.Equal(t, "door stuck", entries[0].Message)
	require.Equal(t, zapcore.InfoLevel, entries[1].Level)
	require.Contains(t, entries[1].Message, "speed 12")
}

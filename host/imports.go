package host

import (
	"math"
	"math/rand/v2"
	"reflect"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lotus-sim/lotus-script-go/action"
	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/gizmo"
	"github.com/lotus-sim/lotus-script-go/graphics"
	"github.com/lotus-sim/lotus-script-go/message"
	"github.com/lotus-sim/lotus-script-go/resource"
	"github.com/lotus-sim/lotus-script-go/sys"
	"github.com/lotus-sim/lotus-script-go/vehicle"
)

var (
	_ sys.Host          = (*Slot)(nil)
	_ resource.Observer = (*Slot)(nil)
)

// arg decodes a guest buffer. Guest buffers stay owned by the guest.
func arg[T any](s *Slot, h ffi.Handle, fn string) (T, bool) {
	var v T
	ptr, size := h.Unpack()
	data, ok := s.mem.Read(ptr, size)
	if !ok {
		s.log.Warn("guest argument out of bounds", zap.String("import", fn),
			zap.Error(errors.OutOfBounds(errors.PhaseHost, ptr, size, 0)))
		return v, false
	}
	if err := ffi.Unmarshal(data, &v); err != nil {
		s.log.Warn("malformed guest argument", zap.String("import", fn),
			zap.Error(errors.DecodeFailed(errors.PhaseHost, reflect.TypeFor[T]().String(), err)))
		return v, false
	}
	return v, true
}

// give encodes v into guest memory and hands the buffer over to the guest.
func (s *Slot) give(v any) ffi.Handle {
	return ffi.Encode(s.mem, v).Forget()
}

func (s *Slot) IsRC() bool { return s.rc }

// messages

func (s *Slot) Send(targets, msg ffi.Handle) {
	ts, ok := arg[[]message.Target](s, targets, "messages.send")
	if !ok {
		return
	}
	m, ok := arg[*message.Message](s, msg, "messages.send")
	if !ok || m == nil {
		return
	}
	s.vehicle.engine.route(s, ts, m)
}

func (s *Slot) Take() ffi.Handle {
	if len(s.inbox) == 0 {
		return 0
	}
	h := s.give(s.inbox)
	s.inbox = nil
	return h
}

// log

func (s *Slot) Write(level int32, msg ffi.Handle) {
	text, ok := arg[string](s, msg, "log.write")
	if !ok {
		return
	}
	switch level {
	case 0:
		s.log.Debug(text)
	case 1:
		s.log.Info(text)
	case 2:
		s.log.Warn(text)
	default:
		s.log.Error(text)
	}
}

// time

func (s *Slot) DeltaF64() float64  { return s.vehicle.engine.delta }
func (s *Slot) TicksAlive() uint64 { return s.ticksAlive }
func (s *Slot) GameTime() int64    { return s.vehicle.engine.gameTime.UnixMicro() }

// var

func (s *Slot) varName(h ffi.Handle, fn string) (string, bool) {
	return arg[string](s, h, fn)
}

func (s *Slot) GetI64(name ffi.Handle) int64 {
	n, _ := s.varName(name, "var.get_i64")
	return lookup[int64](s.vehicle.vars, n)
}

func (s *Slot) SetI64(name ffi.Handle, value int64) {
	if n, ok := s.varName(name, "var.set_i64"); ok {
		s.vehicle.vars.set(n, value)
	}
}

func (s *Slot) GetF64(name ffi.Handle) float64 {
	n, _ := s.varName(name, "var.get_f64")
	return lookup[float64](s.vehicle.vars, n)
}

func (s *Slot) SetF64(name ffi.Handle, value float64) {
	if n, ok := s.varName(name, "var.set_f64"); ok {
		s.vehicle.vars.set(n, value)
	}
}

func (s *Slot) GetString(name ffi.Handle) ffi.Handle {
	n, _ := s.varName(name, "var.get_string")
	return s.give(lookup[string](s.vehicle.vars, n))
}

func (s *Slot) SetString(name, value ffi.Handle) {
	n, ok := s.varName(name, "var.set_string")
	if !ok {
		return
	}
	if v, ok := arg[string](s, value, "var.set_string"); ok {
		s.vehicle.vars.set(n, v)
	}
}

func (s *Slot) GetBool(name ffi.Handle) int32 {
	n, _ := s.varName(name, "var.get_bool")
	if lookup[bool](s.vehicle.vars, n) {
		return 1
	}
	return 0
}

func (s *Slot) SetBool(name ffi.Handle, value int32) {
	if n, ok := s.varName(name, "var.set_bool"); ok {
		s.vehicle.vars.set(n, value != 0)
	}
}

func (s *Slot) GetContentID(name ffi.Handle) ffi.Handle {
	n, _ := s.varName(name, "var.get_content_id")
	return s.give(lookup[content.ID](s.vehicle.vars, n))
}

func (s *Slot) SetContentID(name, value ffi.Handle) {
	n, ok := s.varName(name, "var.set_content_id")
	if !ok {
		return
	}
	if v, ok := arg[content.ID](s, value, "var.set_content_id"); ok {
		s.vehicle.vars.set(n, v)
	}
}

// rand

func (s *Slot) F64() float64 { return s.rng.Float64() }

func (s *Slot) U64(min, max uint64) uint64 {
	if min > max {
		min, max = max, min
	}
	span := max - min
	if span == math.MaxUint64 {
		return s.rng.Uint64()
	}
	return min + s.rng.Uint64N(span+1)
}

func (s *Slot) Seed(seed uint64) {
	s.seed(seed)
}

func (s *Slot) RandomSeed() {
	s.seed(rand.Uint64() | 1)
}

// textures

func (s *Slot) texture(id uint32) (*texture, bool) {
	v, ok := s.textures.GetTyped(resource.Handle(id), resource.KindTexture)
	if !ok {
		return nil, false
	}
	return v.(*texture), true
}

func (s *Slot) Create(options ffi.Handle) uint32 {
	opts, ok := arg[graphics.CreateOptions](s, options, "textures.create")
	if !ok {
		return 0
	}
	return uint32(s.textures.Insert(resource.KindTexture, newTexture(opts)))
}

func (s *Slot) AddAction(id uint32, a ffi.Handle) {
	t, ok := s.texture(id)
	if !ok {
		return
	}
	tagged, ok := arg[graphics.Tagged](s, a, "textures.add_action")
	if !ok {
		return
	}
	t.pending = append(t.pending, tagged.Action)
}

func (s *Slot) GetPixel(id, x, y uint32) uint32 {
	t, ok := s.texture(id)
	if !ok {
		return 0
	}
	return t.pixel(x, y)
}

func (s *Slot) ApplyTo(id uint32, name ffi.Handle) {
	if _, ok := s.texture(id); !ok {
		return
	}
	if n, ok := arg[string](s, name, "textures.apply_to"); ok {
		s.applied[n] = id
	}
}

func (s *Slot) FlushActions(id uint32) uint32 {
	t, ok := s.texture(id)
	if !ok {
		return 0
	}
	if t.flush(s.vehicle.engine) {
		return 1
	}
	return 0
}

func (s *Slot) Dispose(id uint32) {
	s.textures.Remove(resource.Handle(id))
}

// OnResourceEvent keeps the applied textures in step with the texture table.
func (s *Slot) OnResourceEvent(e resource.Event) {
	id := uint32(e.Handle)
	switch e.Type {
	case resource.EventCreated:
		s.log.Debug("texture created", zap.Uint32("id", id))
	case resource.EventDropped:
		for name, applied := range s.applied {
			if applied == id {
				delete(s.applied, name)
			}
		}
		s.log.Debug("texture disposed", zap.Uint32("id", id))
	}
}

// font

func (s *Slot) BitmapFontProperties(fontID ffi.Handle) ffi.Handle {
	id, ok := arg[content.ID](s, fontID, "font.bitmap_font_properties")
	if !ok {
		return 0
	}
	props, ok := s.vehicle.engine.loadedFont(id)
	if !ok {
		return 0
	}
	return s.give(props)
}

func (s *Slot) TextLen(fontID, text ffi.Handle, letterSpacing int32) int32 {
	id, ok := arg[content.ID](s, fontID, "font.text_len")
	if !ok {
		return -1
	}
	str, ok := arg[string](s, text, "font.text_len")
	if !ok {
		return -1
	}
	props, ok := s.vehicle.engine.loadedFont(id)
	if !ok {
		return -1
	}

	var width int32
	n := 0
	for i := 0; i < len(str); {
		r, size := utf8.DecodeRuneInString(str[i:])
		i += size
		if l, ok := props.Letters[string(r)]; ok {
			width += int32(l.Width)
		}
		n++
	}
	if n > 1 {
		width += int32(n-1) * (props.HorizontalDistance + letterSpacing)
	}
	return max(width, 0)
}

// vehicle

func (s *Slot) BogieIsValid(bogie uint32) uint32 {
	st := &s.vehicle.State
	switch {
	case st.Missing:
		return vehicle.VehicleNotFound.Code()
	case int(bogie) >= len(st.Bogies):
		return vehicle.BogieNotFound.Code()
	}
	return 0
}

func (s *Slot) AxleIsValid(bogie, axle uint32) uint32 {
	_, code := s.vehicle.axle(bogie, axle)
	return code
}

func (s *Slot) PantographIsValid(p uint32) uint32 {
	_, code := s.vehicle.pantograph(p)
	return code
}

func (s *Slot) IsCoupled(c uint32) uint32 {
	if c > uint32(vehicle.Rear) || !s.vehicle.coupled[c] {
		return 0
	}
	return 1
}

func (s *Slot) RailQuality(bogie, axle uint32) uint32 {
	a, code := s.vehicle.axle(bogie, axle)
	if code != 0 {
		return code
	}
	return uint32(a.RailQuality)
}

func (s *Slot) SurfaceType(bogie, axle uint32) uint32 {
	a, code := s.vehicle.axle(bogie, axle)
	if code != 0 {
		return code
	}
	return uint32(a.Surface)
}

// InverseRadius reports a missing vehicle as NaN, a missing bogie as -Inf and a
// missing axle as +Inf.
func (s *Slot) InverseRadius(bogie, axle uint32) float32 {
	a, code := s.vehicle.axle(bogie, axle)
	switch vehicle.Error(code) {
	case 0:
		return a.InverseRadius
	case vehicle.VehicleNotFound:
		return float32(math.NaN())
	case vehicle.BogieNotFound:
		return float32(math.Inf(-1))
	default:
		return float32(math.Inf(1))
	}
}

func (s *Slot) VelocityVsGround() float32     { return s.vehicle.State.Velocity }
func (s *Slot) AccelerationVsGround() float32 { return s.vehicle.State.Acceleration }

func (s *Slot) PantographHeight(p uint32) float32 {
	return pantographQuery(s, p, func(ps *PantographState) float32 { return ps.Height })
}

func (s *Slot) PantographVoltage(p uint32) float32 {
	return pantographQuery(s, p, func(ps *PantographState) float32 { return ps.Voltage })
}

func pantographQuery(s *Slot, p uint32, get func(*PantographState) float32) float32 {
	ps, code := s.vehicle.pantograph(p)
	switch vehicle.Error(code) {
	case 0:
		return get(ps)
	case vehicle.VehicleNotFound:
		return float32(math.NaN())
	default:
		return float32(math.Inf(1))
	}
}

func (s *Slot) SetTractionForceNewton(bogie, axle uint32, value float32) {
	if a, code := s.vehicle.axle(bogie, axle); code == 0 {
		a.TractionForce = value
	}
}

func (s *Slot) SetBrakeForceNewton(bogie, axle uint32, value float32) {
	if a, code := s.vehicle.axle(bogie, axle); code == 0 {
		a.BrakeForce = value
	}
}

func (s *Slot) SetRailBrakeForceNewton(bogie uint32, value float32) {
	if s.BogieIsValid(bogie) == 0 {
		s.vehicle.State.Bogies[bogie].RailBrakeForce = value
	}
}

// module

func (s *Slot) ModuleSlotCockpitIndex() int32 {
	if s.module == nil {
		return -1
	}
	return s.module.CockpitIndex
}

func (s *Slot) ModuleSlotIndexInClassGroup() int32 {
	if s.module == nil {
		return -1
	}
	return s.module.IndexInClassGroup
}

func (s *Slot) ModuleSlotIndex() int32 {
	if s.module == nil {
		return -1
	}
	return s.module.Index
}

// action

func (s *Slot) Register(a ffi.Handle) {
	reg, ok := arg[action.Register](s, a, "action.register")
	if !ok {
		return
	}
	s.actions[reg.ID] = &actionBinding{key: reg.DefaultKey}
}

func (s *Slot) State(a ffi.Handle) ffi.Handle {
	id, _ := arg[string](s, a, "action.state")
	var st action.State
	if b, ok := s.actions[id]; ok {
		st = b.state
	}
	return s.give(st)
}

// input, gizmo, assets

func (s *Slot) MouseDelta() ffi.Handle {
	return s.give(s.vehicle.engine.mouse)
}

func (s *Slot) Draw(g ffi.Handle) {
	if gz, ok := arg[gizmo.Gizmo](s, g, "gizmo.draw"); ok {
		s.vehicle.engine.gizmos = append(s.vehicle.engine.gizmos, gz)
	}
}

func (s *Slot) Preload(id ffi.Handle) {
	if cid, ok := arg[content.ID](s, id, "assets.preload"); ok {
		s.vehicle.engine.preloads = append(s.vehicle.engine.preloads, cid)
	}
}

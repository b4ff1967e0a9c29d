package host

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/lotus-sim/lotus-script-go/ffi"
)

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f32 = api.ValueTypeF32
	f64 = api.ValueTypeF64
)

type hostFunc struct {
	params  []api.ValueType
	results []api.ValueType
	call    func(s *Slot, stack []uint64)
}

func fn(params, results []api.ValueType, call func(s *Slot, stack []uint64)) hostFunc {
	return hostFunc{params: params, results: results, call: call}
}

func vt(types ...api.ValueType) []api.ValueType { return types }

// goFunc resolves the calling slot from the context. Without one every result is zero.
func (h hostFunc) goFunc() api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		s := slotFrom(ctx)
		if s == nil {
			clear(stack[:len(h.results)])
			return
		}
		h.call(s, stack)
	}
}

func asHandle(v uint64) ffi.Handle { return ffi.Handle(v) }

func u32(v uint64) uint32 { return api.DecodeU32(v) }

func b32(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// hostFuncs is every import the host implements, by module and function name.
var hostFuncs = map[string]map[string]hostFunc{
	"env": {
		"is_rc": fn(nil, vt(i32), func(s *Slot, st []uint64) { st[0] = b32(s.IsRC()) }),
	},
	"messages": {
		"send": fn(vt(i64, i64), nil, func(s *Slot, st []uint64) { s.Send(asHandle(st[0]), asHandle(st[1])) }),
		"take": fn(nil, vt(i64), func(s *Slot, st []uint64) { st[0] = uint64(s.Take()) }),
	},
	"log": {
		"write": fn(vt(i32, i64), nil, func(s *Slot, st []uint64) { s.Write(api.DecodeI32(st[0]), asHandle(st[1])) }),
	},
	"time": {
		"delta_f64":   fn(nil, vt(f64), func(s *Slot, st []uint64) { st[0] = api.EncodeF64(s.DeltaF64()) }),
		"ticks_alive": fn(nil, vt(i64), func(s *Slot, st []uint64) { st[0] = s.TicksAlive() }),
		"game_time":   fn(nil, vt(i64), func(s *Slot, st []uint64) { st[0] = api.EncodeI64(s.GameTime()) }),
	},
	"var": {
		"get_i64": fn(vt(i64), vt(i64), func(s *Slot, st []uint64) { st[0] = api.EncodeI64(s.GetI64(asHandle(st[0]))) }),
		"set_i64": fn(vt(i64, i64), nil, func(s *Slot, st []uint64) { s.SetI64(asHandle(st[0]), int64(st[1])) }),
		"get_f64": fn(vt(i64), vt(f64), func(s *Slot, st []uint64) { st[0] = api.EncodeF64(s.GetF64(asHandle(st[0]))) }),
		"set_f64": fn(vt(i64, f64), nil, func(s *Slot, st []uint64) {
			s.SetF64(asHandle(st[0]), api.DecodeF64(st[1]))
		}),
		"get_string": fn(vt(i64), vt(i64), func(s *Slot, st []uint64) { st[0] = uint64(s.GetString(asHandle(st[0]))) }),
		"set_string": fn(vt(i64, i64), nil, func(s *Slot, st []uint64) { s.SetString(asHandle(st[0]), asHandle(st[1])) }),
		"get_bool":   fn(vt(i64), vt(i32), func(s *Slot, st []uint64) { st[0] = api.EncodeI32(s.GetBool(asHandle(st[0]))) }),
		"set_bool": fn(vt(i64, i32), nil, func(s *Slot, st []uint64) {
			s.SetBool(asHandle(st[0]), api.DecodeI32(st[1]))
		}),
		"get_content_id": fn(vt(i64), vt(i64), func(s *Slot, st []uint64) { st[0] = uint64(s.GetContentID(asHandle(st[0]))) }),
		"set_content_id": fn(vt(i64, i64), nil, func(s *Slot, st []uint64) { s.SetContentID(asHandle(st[0]), asHandle(st[1])) }),
	},
	"rand": {
		"f64":         fn(nil, vt(f64), func(s *Slot, st []uint64) { st[0] = api.EncodeF64(s.F64()) }),
		"u64":         fn(vt(i64, i64), vt(i64), func(s *Slot, st []uint64) { st[0] = s.U64(st[0], st[1]) }),
		"seed":        fn(vt(i64), nil, func(s *Slot, st []uint64) { s.Seed(st[0]) }),
		"random_seed": fn(nil, nil, func(s *Slot, _ []uint64) { s.RandomSeed() }),
	},
	"textures": {
		"create":     fn(vt(i64), vt(i32), func(s *Slot, st []uint64) { st[0] = api.EncodeU32(s.Create(asHandle(st[0]))) }),
		"add_action": fn(vt(i32, i64), nil, func(s *Slot, st []uint64) { s.AddAction(u32(st[0]), asHandle(st[1])) }),
		"get_pixel": fn(vt(i32, i32, i32), vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeU32(s.GetPixel(u32(st[0]), u32(st[1]), u32(st[2])))
		}),
		"apply_to":      fn(vt(i32, i64), nil, func(s *Slot, st []uint64) { s.ApplyTo(u32(st[0]), asHandle(st[1])) }),
		"flush_actions": fn(vt(i32), vt(i32), func(s *Slot, st []uint64) { st[0] = api.EncodeU32(s.FlushActions(u32(st[0]))) }),
		"dispose":       fn(vt(i32), nil, func(s *Slot, st []uint64) { s.Dispose(u32(st[0])) }),
	},
	"font": {
		"bitmap_font_properties": fn(vt(i64), vt(i64), func(s *Slot, st []uint64) {
			st[0] = uint64(s.BitmapFontProperties(asHandle(st[0])))
		}),
		"text_len": fn(vt(i64, i64, i32), vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeI32(s.TextLen(asHandle(st[0]), asHandle(st[1]), api.DecodeI32(st[2])))
		}),
	},
	"vehicle": {
		"bogie_is_valid": fn(vt(i32), vt(i32), func(s *Slot, st []uint64) { st[0] = api.EncodeU32(s.BogieIsValid(u32(st[0]))) }),
		"axle_is_valid": fn(vt(i32, i32), vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeU32(s.AxleIsValid(u32(st[0]), u32(st[1])))
		}),
		"pantograph_is_valid": fn(vt(i32), vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeU32(s.PantographIsValid(u32(st[0])))
		}),
		"is_coupled": fn(vt(i32), vt(i32), func(s *Slot, st []uint64) { st[0] = api.EncodeU32(s.IsCoupled(u32(st[0]))) }),
		"rail_quality": fn(vt(i32, i32), vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeU32(s.RailQuality(u32(st[0]), u32(st[1])))
		}),
		"surface_type": fn(vt(i32, i32), vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeU32(s.SurfaceType(u32(st[0]), u32(st[1])))
		}),
		"inverse_radius": fn(vt(i32, i32), vt(f32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeF32(s.InverseRadius(u32(st[0]), u32(st[1])))
		}),
		"velocity_vs_ground":     fn(nil, vt(f32), func(s *Slot, st []uint64) { st[0] = api.EncodeF32(s.VelocityVsGround()) }),
		"acceleration_vs_ground": fn(nil, vt(f32), func(s *Slot, st []uint64) { st[0] = api.EncodeF32(s.AccelerationVsGround()) }),
		"pantograph_height": fn(vt(i32), vt(f32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeF32(s.PantographHeight(u32(st[0])))
		}),
		"pantograph_voltage": fn(vt(i32), vt(f32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeF32(s.PantographVoltage(u32(st[0])))
		}),
		"set_traction_force_newton": fn(vt(i32, i32, f32), nil, func(s *Slot, st []uint64) {
			s.SetTractionForceNewton(u32(st[0]), u32(st[1]), api.DecodeF32(st[2]))
		}),
		"set_brake_force_newton": fn(vt(i32, i32, f32), nil, func(s *Slot, st []uint64) {
			s.SetBrakeForceNewton(u32(st[0]), u32(st[1]), api.DecodeF32(st[2]))
		}),
		"set_rail_brake_force_newton": fn(vt(i32, f32), nil, func(s *Slot, st []uint64) {
			s.SetRailBrakeForceNewton(u32(st[0]), api.DecodeF32(st[1]))
		}),
	},
	"module": {
		"module_slot_cockpit_index": fn(nil, vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeI32(s.ModuleSlotCockpitIndex())
		}),
		"module_slot_index_in_class_group": fn(nil, vt(i32), func(s *Slot, st []uint64) {
			st[0] = api.EncodeI32(s.ModuleSlotIndexInClassGroup())
		}),
		"module_slot_index": fn(nil, vt(i32), func(s *Slot, st []uint64) { st[0] = api.EncodeI32(s.ModuleSlotIndex()) }),
	},
	"action": {
		"register": fn(vt(i64), nil, func(s *Slot, st []uint64) { s.Register(asHandle(st[0])) }),
		"state":    fn(vt(i64), vt(i64), func(s *Slot, st []uint64) { st[0] = uint64(s.State(asHandle(st[0]))) }),
	},
	"input": {
		"mouse_delta": fn(nil, vt(i64), func(s *Slot, st []uint64) { st[0] = uint64(s.MouseDelta()) }),
	},
	"gizmo": {
		"draw": fn(vt(i64), nil, func(s *Slot, st []uint64) { s.Draw(asHandle(st[0])) }),
	},
	"assets": {
		"preload": fn(vt(i64), nil, func(s *Slot, st []uint64) { s.Preload(asHandle(st[0])) }),
	},
}

//go:build wasip1

package sys

import "github.com/lotus-sim/lotus-script-go/ffi"

func init() {
	Bind(ffi.Heap, wasmHost{})
}

//go:wasmimport env is_rc
func isRC() uint32

//go:wasmimport messages send
func messagesSend(targets, message uint64)

//go:wasmimport messages take
func messagesTake() uint64

//go:wasmimport log write
func logWrite(level int32, message uint64)

//go:wasmimport time delta_f64
func timeDeltaF64() float64

//go:wasmimport time ticks_alive
func timeTicksAlive() uint64

//go:wasmimport time game_time
func timeGameTime() int64

//go:wasmimport var get_i64
func varGetI64(name uint64) int64

//go:wasmimport var set_i64
func varSetI64(name uint64, value int64)

//go:wasmimport var get_f64
func varGetF64(name uint64) float64

//go:wasmimport var set_f64
func varSetF64(name uint64, value float64)

//go:wasmimport var get_string
func varGetString(name uint64) uint64

//go:wasmimport var set_string
func varSetString(name, value uint64)

//go:wasmimport var get_bool
func varGetBool(name uint64) int32

//go:wasmimport var set_bool
func varSetBool(name uint64, value int32)

//go:wasmimport var get_content_id
func varGetContentID(name uint64) uint64

//go:wasmimport var set_content_id
func varSetContentID(name, value uint64)

//go:wasmimport rand f64
func randF64() float64

//go:wasmimport rand u64
func randU64(min, max uint64) uint64

//go:wasmimport rand seed
func randSeed(seed uint64)

//go:wasmimport rand random_seed
func randRandomSeed()

//go:wasmimport textures create
func texturesCreate(options uint64) uint32

//go:wasmimport textures add_action
func texturesAddAction(texture uint32, action uint64)

//go:wasmimport textures get_pixel
func texturesGetPixel(texture, x, y uint32) uint32

//go:wasmimport textures apply_to
func texturesApplyTo(texture uint32, name uint64)

//go:wasmimport textures flush_actions
func texturesFlushActions(texture uint32) uint32

//go:wasmimport textures dispose
func texturesDispose(texture uint32)

//go:wasmimport font bitmap_font_properties
func fontBitmapFontProperties(font uint64) uint64

//go:wasmimport font text_len
func fontTextLen(font, text uint64, letterSpacing int32) int32

//go:wasmimport vehicle bogie_is_valid
func vehicleBogieIsValid(bogie uint32) uint32

//go:wasmimport vehicle axle_is_valid
func vehicleAxleIsValid(bogie, axle uint32) uint32

//go:wasmimport vehicle pantograph_is_valid
func vehiclePantographIsValid(pantograph uint32) uint32

//go:wasmimport vehicle is_coupled
func vehicleIsCoupled(coupling uint32) uint32

//go:wasmimport vehicle rail_quality
func vehicleRailQuality(bogie, axle uint32) uint32

//go:wasmimport vehicle surface_type
func vehicleSurfaceType(bogie, axle uint32) uint32

//go:wasmimport vehicle inverse_radius
func vehicleInverseRadius(bogie, axle uint32) float32

//go:wasmimport vehicle velocity_vs_ground
func vehicleVelocityVsGround() float32

//go:wasmimport vehicle acceleration_vs_ground
func vehicleAccelerationVsGround() float32

//go:wasmimport vehicle pantograph_height
func vehiclePantographHeight(pantograph uint32) float32

//go:wasmimport vehicle pantograph_voltage
func vehiclePantographVoltage(pantograph uint32) float32

//go:wasmimport vehicle set_traction_force_newton
func vehicleSetTractionForceNewton(bogie, axle uint32, value float32)

//go:wasmimport vehicle set_brake_force_newton
func vehicleSetBrakeForceNewton(bogie, axle uint32, value float32)

//go:wasmimport vehicle set_rail_brake_force_newton
func vehicleSetRailBrakeForceNewton(bogie uint32, value float32)

//go:wasmimport module module_slot_cockpit_index
func moduleSlotCockpitIndex() int32

//go:wasmimport module module_slot_index_in_class_group
func moduleSlotIndexInClassGroup() int32

//go:wasmimport module module_slot_index
func moduleSlotIndex() int32

//go:wasmimport action register
func actionRegister(action uint64)

//go:wasmimport action state
func actionState(action uint64) uint64

//go:wasmimport input mouse_delta
func inputMouseDelta() uint64

//go:wasmimport gizmo draw
func gizmoDraw(gizmo uint64)

//go:wasmimport assets preload
func assetsPreload(id uint64)

// wasmHost forwards every import group to the linked wasm imports.
type wasmHost struct{}

func (wasmHost) IsRC() bool { return isRC() != 0 }

func (wasmHost) Send(targets, message ffi.Handle) { messagesSend(uint64(targets), uint64(message)) }
func (wasmHost) Take() ffi.Handle                 { return ffi.Handle(messagesTake()) }

func (wasmHost) Write(level int32, message ffi.Handle) { logWrite(level, uint64(message)) }

func (wasmHost) DeltaF64() float64  { return timeDeltaF64() }
func (wasmHost) TicksAlive() uint64 { return timeTicksAlive() }
func (wasmHost) GameTime() int64    { return timeGameTime() }

func (wasmHost) GetI64(name ffi.Handle) int64           { return varGetI64(uint64(name)) }
func (wasmHost) SetI64(name ffi.Handle, value int64)    { varSetI64(uint64(name), value) }
func (wasmHost) GetF64(name ffi.Handle) float64         { return varGetF64(uint64(name)) }
func (wasmHost) SetF64(name ffi.Handle, value float64)  { varSetF64(uint64(name), value) }
func (wasmHost) GetString(name ffi.Handle) ffi.Handle   { return ffi.Handle(varGetString(uint64(name))) }
func (wasmHost) SetString(name, value ffi.Handle)       { varSetString(uint64(name), uint64(value)) }
func (wasmHost) GetBool(name ffi.Handle) int32          { return varGetBool(uint64(name)) }
func (wasmHost) SetBool(name ffi.Handle, value int32)   { varSetBool(uint64(name), value) }
func (wasmHost) GetContentID(name ffi.Handle) ffi.Handle {
	return ffi.Handle(varGetContentID(uint64(name)))
}
func (wasmHost) SetContentID(name, value ffi.Handle) { varSetContentID(uint64(name), uint64(value)) }

func (wasmHost) F64() float64               { return randF64() }
func (wasmHost) U64(min, max uint64) uint64 { return randU64(min, max) }
func (wasmHost) Seed(seed uint64)           { randSeed(seed) }
func (wasmHost) RandomSeed()                { randRandomSeed() }

func (wasmHost) Create(options ffi.Handle) uint32 { return texturesCreate(uint64(options)) }
func (wasmHost) AddAction(texture uint32, action ffi.Handle) {
	texturesAddAction(texture, uint64(action))
}
func (wasmHost) GetPixel(texture, x, y uint32) uint32 { return texturesGetPixel(texture, x, y) }
func (wasmHost) ApplyTo(texture uint32, name ffi.Handle) {
	texturesApplyTo(texture, uint64(name))
}
func (wasmHost) FlushActions(texture uint32) uint32 { return texturesFlushActions(texture) }
func (wasmHost) Dispose(texture uint32)             { texturesDispose(texture) }

func (wasmHost) BitmapFontProperties(font ffi.Handle) ffi.Handle {
	return ffi.Handle(fontBitmapFontProperties(uint64(font)))
}
func (wasmHost) TextLen(font, text ffi.Handle, letterSpacing int32) int32 {
	return fontTextLen(uint64(font), uint64(text), letterSpacing)
}

func (wasmHost) BogieIsValid(bogie uint32) uint32           { return vehicleBogieIsValid(bogie) }
func (wasmHost) AxleIsValid(bogie, axle uint32) uint32      { return vehicleAxleIsValid(bogie, axle) }
func (wasmHost) PantographIsValid(pantograph uint32) uint32 { return vehiclePantographIsValid(pantograph) }
func (wasmHost) IsCoupled(coupling uint32) uint32           { return vehicleIsCoupled(coupling) }
func (wasmHost) RailQuality(bogie, axle uint32) uint32      { return vehicleRailQuality(bogie, axle) }
func (wasmHost) SurfaceType(bogie, axle uint32) uint32      { return vehicleSurfaceType(bogie, axle) }
func (wasmHost) InverseRadius(bogie, axle uint32) float32 {
	return vehicleInverseRadius(bogie, axle)
}
func (wasmHost) VelocityVsGround() float32     { return vehicleVelocityVsGround() }
func (wasmHost) AccelerationVsGround() float32 { return vehicleAccelerationVsGround() }
func (wasmHost) PantographHeight(pantograph uint32) float32 {
	return vehiclePantographHeight(pantograph)
}
func (wasmHost) PantographVoltage(pantograph uint32) float32 {
	return vehiclePantographVoltage(pantograph)
}
func (wasmHost) SetTractionForceNewton(bogie, axle uint32, value float32) {
	vehicleSetTractionForceNewton(bogie, axle, value)
}
func (wasmHost) SetBrakeForceNewton(bogie, axle uint32, value float32) {
	vehicleSetBrakeForceNewton(bogie, axle, value)
}
func (wasmHost) SetRailBrakeForceNewton(bogie uint32, value float32) {
	vehicleSetRailBrakeForceNewton(bogie, value)
}

func (wasmHost) ModuleSlotCockpitIndex() int32      { return moduleSlotCockpitIndex() }
func (wasmHost) ModuleSlotIndexInClassGroup() int32 { return moduleSlotIndexInClassGroup() }
func (wasmHost) ModuleSlotIndex() int32             { return moduleSlotIndex() }

func (wasmHost) Register(action ffi.Handle)            { actionRegister(uint64(action)) }
func (wasmHost) State(action ffi.Handle) ffi.Handle    { return ffi.Handle(actionState(uint64(action))) }
func (wasmHost) MouseDelta() ffi.Handle                { return ffi.Handle(inputMouseDelta()) }
func (wasmHost) Draw(gizmo ffi.Handle)                 { gizmoDraw(uint64(gizmo)) }
func (wasmHost) Preload(id ffi.Handle)                 { assetsPreload(uint64(id)) }

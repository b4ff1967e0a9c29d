package sys

import (
	lotus "github.com/lotus-sim/lotus-script-go"
	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/ffi"
)

// Messages is the "messages" import module.
type Messages interface {
	// Send delivers message to every target in the encoded target list.
	Send(targets, message ffi.Handle)
	// Take returns all pending inbound messages as one encoded list, written into guest
	// memory through the allocate export. The guest owns the returned buffer.
	Take() ffi.Handle
}

// Log is the "log" import module.
type Log interface {
	Write(level int32, message ffi.Handle)
}

// Clock is the "time" import module.
type Clock interface {
	DeltaF64() float64
	TicksAlive() uint64
	GameTime() int64
}

// Vars is the "var" import module.
type Vars interface {
	GetI64(name ffi.Handle) int64
	SetI64(name ffi.Handle, value int64)
	GetF64(name ffi.Handle) float64
	SetF64(name ffi.Handle, value float64)
	GetString(name ffi.Handle) ffi.Handle
	SetString(name, value ffi.Handle)
	GetBool(name ffi.Handle) int32
	SetBool(name ffi.Handle, value int32)
	GetContentID(name ffi.Handle) ffi.Handle
	SetContentID(name, value ffi.Handle)
}

// Random is the "rand" import module.
type Random interface {
	F64() float64
	// U64 draws from [min, max] inclusive.
	U64(min, max uint64) uint64
	Seed(seed uint64)
	RandomSeed()
}

// Textures is the "textures" import module.
type Textures interface {
	Create(options ffi.Handle) uint32
	AddAction(texture uint32, action ffi.Handle)
	GetPixel(texture, x, y uint32) uint32
	ApplyTo(texture uint32, name ffi.Handle)
	// FlushActions returns 1 once all queued actions are applied, 0 while assets stream in.
	FlushActions(texture uint32) uint32
	Dispose(texture uint32)
}

// Fonts is the "font" import module.
type Fonts interface {
	// BitmapFontProperties returns 0 while the font is still loading.
	BitmapFontProperties(font ffi.Handle) ffi.Handle
	// TextLen returns -1 when the font is not loaded.
	TextLen(font, text ffi.Handle, letterSpacing int32) int32
}

// Vehicle is the "vehicle" import module. Float queries use NaN and ±Inf as not-found
// sentinels; validity checks return 0 or a vehicle error code.
type Vehicle interface {
	BogieIsValid(bogie uint32) uint32
	AxleIsValid(bogie, axle uint32) uint32
	PantographIsValid(pantograph uint32) uint32
	IsCoupled(coupling uint32) uint32
	RailQuality(bogie, axle uint32) uint32
	SurfaceType(bogie, axle uint32) uint32
	InverseRadius(bogie, axle uint32) float32
	VelocityVsGround() float32
	AccelerationVsGround() float32
	PantographHeight(pantograph uint32) float32
	PantographVoltage(pantograph uint32) float32
	SetTractionForceNewton(bogie, axle uint32, value float32)
	SetBrakeForceNewton(bogie, axle uint32, value float32)
	SetRailBrakeForceNewton(bogie uint32, value float32)
}

// Module is the "module" import module. Every query returns -1 when the script does not
// run for a module slot.
type Module interface {
	ModuleSlotCockpitIndex() int32
	ModuleSlotIndexInClassGroup() int32
	ModuleSlotIndex() int32
}

// Actions is the "action" import module.
type Actions interface {
	Register(action ffi.Handle)
	State(action ffi.Handle) ffi.Handle
}

// Input is the "input" import module.
type Input interface {
	MouseDelta() ffi.Handle
}

// Gizmos is the "gizmo" import module.
type Gizmos interface {
	Draw(gizmo ffi.Handle)
}

// Assets is the "assets" import module.
type Assets interface {
	Preload(id ffi.Handle)
}

// Env holds the imports of the default "env" module.
type Env interface {
	IsRC() bool
}

// Host is the full set of imports a guest links against.
type Host interface {
	Env
	Messages
	Log
	Clock
	Vars
	Random
	Textures
	Fonts
	Vehicle
	Module
	Actions
	Input
	Gizmos
	Assets
}

var (
	boundMem  lotus.Memory
	boundHost Host
)

// Bind links guest code to mem and host and returns a function restoring the previous
// binding. Tests and the loopback host use it; wasm builds are bound at startup.
func Bind(mem lotus.Memory, host Host) (restore func()) {
	prevMem, prevHost := boundMem, boundHost
	boundMem, boundHost = mem, host
	return func() {
		boundMem, boundHost = prevMem, prevHost
	}
}

// Memory returns the guest memory handles are encoded into.
func Memory() lotus.Memory {
	if boundMem == nil {
		panic(errors.NotInitialized(errors.PhaseHost, "guest memory"))
	}
	return boundMem
}

// Imports returns the bound host imports.
func Imports() Host {
	if boundHost == nil {
		panic(errors.NotInitialized(errors.PhaseHost, "host imports"))
	}
	return boundHost
}

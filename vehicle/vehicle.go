package vehicle

import (
	"fmt"

	"github.com/lotus-sim/lotus-script-go/sys"
)

// RailQuality describes the rails under an axle.
type RailQuality uint8

const (
	Smooth RailQuality = iota
	Rough
	FroggySmooth
	FroggyRough
	FlatGroove
	HighSpeedSmooth
	SmoothDirt
	RoughDirt
)

// SurfaceType describes the ground under an axle.
type SurfaceType uint8

const (
	Gravel SurfaceType = iota
	Street
	Grass
)

// Bogie is a validated bogie index.
type Bogie struct {
	index uint32
}

// GetBogie returns the bogie at index, or BogieNotFound / VehicleNotFound.
func GetBogie(index uint32) (Bogie, error) {
	if code := sys.Imports().BogieIsValid(index); code != 0 {
		return Bogie{}, ErrorFromCode(code)
	}
	return Bogie{index: index}, nil
}

// Index returns the bogie index.
func (b Bogie) Index() uint32 { return b.index }

// Axle returns the axle at index on this bogie.
func (b Bogie) Axle(index uint32) (Axle, error) {
	return GetAxle(b.index, index)
}

// SetRailBrakeForceNewton sets the magnetic rail brake force of the bogie.
func (b Bogie) SetRailBrakeForceNewton(value float32) {
	sys.Imports().SetRailBrakeForceNewton(b.index, value)
}

// Axle is a validated axle on a bogie.
type Axle struct {
	bogie uint32
	axle  uint32
}

// GetAxle returns the axle, or the code the host reported for the missing part.
func GetAxle(bogie, axle uint32) (Axle, error) {
	if code := sys.Imports().AxleIsValid(bogie, axle); code != 0 {
		return Axle{}, ErrorFromCode(code)
	}
	return Axle{bogie: bogie, axle: axle}, nil
}

// Bogie returns the bogie the axle belongs to.
func (a Axle) Bogie() Bogie { return Bogie{index: a.bogie} }

// Index returns the axle index within its bogie.
func (a Axle) Index() uint32 { return a.axle }

// VelocityVarName is the host variable holding the axle's wheel speed in m/s.
func (a Axle) VelocityVarName() string {
	return fmt.Sprintf("v_Axle_mps_%d_%d", a.bogie, a.axle)
}

// InverseRadius returns the track curvature (1/R) under the axle. Positive is right.
func (a Axle) InverseRadius() (float32, error) {
	return InverseRadius(a.bogie, a.axle)
}

// RailQuality returns the rail quality under the axle.
func (a Axle) RailQuality() (RailQuality, error) {
	q := sys.Imports().RailQuality(a.bogie, a.axle)
	if q > uint32(RoughDirt) {
		return 0, ErrorFromCode(q)
	}
	return RailQuality(q), nil
}

// SurfaceType returns the surface under the axle.
func (a Axle) SurfaceType() (SurfaceType, error) {
	s := sys.Imports().SurfaceType(a.bogie, a.axle)
	if s > uint32(Grass) {
		return 0, ErrorFromCode(s)
	}
	return SurfaceType(s), nil
}

// SetTractionForceNewton sets the force the axle applies on the rail, in either direction.
func (a Axle) SetTractionForceNewton(value float32) {
	sys.Imports().SetTractionForceNewton(a.bogie, a.axle, value)
}

// SetBrakeForceNewton sets the brake force, always acting against the direction of travel.
func (a Axle) SetBrakeForceNewton(value float32) {
	sys.Imports().SetBrakeForceNewton(a.bogie, a.axle, value)
}

// Pantograph is a validated pantograph index.
type Pantograph struct {
	index uint32
}

// GetPantograph returns the pantograph at index.
func GetPantograph(index uint32) (Pantograph, error) {
	if code := sys.Imports().PantographIsValid(index); code != 0 {
		return Pantograph{}, ErrorFromCode(code)
	}
	return Pantograph{index: index}, nil
}

// Height returns the height of the lowest contact wire above the pantograph.
func (p Pantograph) Height() (float32, error) {
	return PantographHeight(p.index)
}

// Voltage returns the normalized contact wire voltage above the pantograph.
func (p Pantograph) Voltage() (float32, error) {
	return PantographVoltage(p.index)
}

// InverseRadius returns the track curvature under an axle. -Inf from the host means the
// bogie is missing, +Inf means the axle is missing.
func InverseRadius(bogie, axle uint32) (float32, error) {
	return fromSentinel(sys.Imports().InverseRadius(bogie, axle), BogieNotFound, AxleNotFound)
}

// PantographHeight returns the contact wire height above a pantograph.
func PantographHeight(pantograph uint32) (float32, error) {
	return fromSentinel(sys.Imports().PantographHeight(pantograph), PantographNotFound, PantographNotFound)
}

// PantographVoltage returns the normalized contact wire voltage above a pantograph.
// 1.0 is the nominal voltage; whether the pantograph touches the wire is up to the caller.
func PantographVoltage(pantograph uint32) (float32, error) {
	return fromSentinel(sys.Imports().PantographVoltage(pantograph), PantographNotFound, PantographNotFound)
}

// VelocityVsGround returns the speed over ground along the vehicle, ignoring wheel slip.
func VelocityVsGround() float32 {
	return sys.Imports().VelocityVsGround()
}

// AccelerationVsGround returns the acceleration over ground along the vehicle.
func AccelerationVsGround() float32 {
	return sys.Imports().AccelerationVsGround()
}

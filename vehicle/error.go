package vehicle

import "math"

// Error is the closed set of not-found conditions the host reports for vehicle queries.
type Error uint32

const (
	Unknown            Error = 0
	VehicleNotFound    Error = 256
	BogieNotFound      Error = 512
	AxleNotFound       Error = 1024
	PantographNotFound Error = 2048
)

// ErrorFromCode maps a host status code to an Error. Unlisted codes become Unknown.
func ErrorFromCode(code uint32) Error {
	switch Error(code) {
	case VehicleNotFound, BogieNotFound, AxleNotFound, PantographNotFound:
		return Error(code)
	default:
		return Unknown
	}
}

func (e Error) Error() string {
	switch e {
	case VehicleNotFound:
		return "vehicle not found"
	case BogieNotFound:
		return "bogie not found"
	case AxleNotFound:
		return "axle not found"
	case PantographNotFound:
		return "pantograph not found"
	default:
		return "unknown error"
	}
}

// Code returns the host status code for e.
func (e Error) Code() uint32 {
	return uint32(e)
}

// fromSentinel translates a float query result. NaN means the vehicle is missing; an
// infinity means the sub-component named by onNegInf or onPosInf is missing.
func fromSentinel(v float32, onNegInf, onPosInf Error) (float32, error) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return 0, VehicleNotFound
	case math.IsInf(f, 1):
		return 0, onPosInf
	case math.IsInf(f, -1):
		return 0, onNegInf
	default:
		return v, nil
	}
}

// Package vehicle exposes the vehicle the script runs in: couplings, bogies, axles and
// pantographs, plus the physics queries and actuator writes the host provides for them.
//
// The host reports missing physical objects out of band. Validity checks return an error
// code, float queries return NaN when the vehicle is missing and an infinity when a
// sub-component is missing. Both are translated into Error at the first call site here:
//
//	radius, err := vehicle.InverseRadius(0, 1)
//	if errors.Is(err, vehicle.AxleNotFound) {
//		// axle 1 is not attached yet
//	}
package vehicle

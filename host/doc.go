// Package host is a reference engine for lotus scripts.
//
// It models a train of vehicles, each carrying script slots arranged as a tree
// (parent and children, cockpit groups), and implements every import the guest SDK
// links against. A slot runs one Guest:
//
//   - Loopback runs a script.Runner in-process over an ffi.LinearMemory, binding the
//     guest SDK to the slot for the duration of each call. Tests use it to exercise the
//     full boundary protocol natively.
//   - Instance runs a compiled wasip1 module under wazero.
//
// Each Step calls tick on every slot, then late_tick on every slot, so messages sent
// during tick are visible in the same step's late_tick.
//
// Message routing resolves targets against the topology and stamps Source.Coupling with
// the receiving vehicle's coupling when a message crosses into another vehicle.
//
// Guest buffers are untrusted here: arguments are decoded with ffi.Unmarshal and
// malformed ones are logged and ignored instead of aborting.
package host

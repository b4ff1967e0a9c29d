// Package lotus is the guest SDK for LOTUS scripts: small sandboxed wasm modules that
// exchange structured data and control messages with the simulation engine.
//
// Only integers and floats cross the module boundary directly. Everything else travels as a
// packed 64-bit handle (address in the high half, byte length in the low half) that points
// at a MessagePack buffer in guest linear memory.
//
// # Architecture Overview
//
//	lotus/            Root package with the Memory and Allocator interfaces
//	├── ffi/          Handles, owned/borrowed buffers, the binary codec, guest heap
//	├── sys/          Host import groups and their wasip1 bindings
//	├── message/      Typed message envelopes, targets, send/take
//	├── vehicle/      Couplings, bogies, axles and the not-found sentinel mapping
//	├── script/       Script lifecycle adapter and public_vars probe
//	├── log/          zap core writing to the host log import
//	├── resource/     Poll-until-ready state machine and host handle table
//	├── graphics/     Script textures and their drawing actions
//	├── vars/ font/ action/ input/ clock/ random/ gizmo/ assets/ slot/ content/ geom/
//	│                 Thin per-domain wrappers over sys
//	├── host/         Reference host (message bus, wazero loader, loopback for tests)
//	├── errors/       Structured error types
//	└── cmd/lotus-sc/ info, deploy and run tooling
//
// # Quick Start
//
// A script implements script.Script and registers itself from an init function:
//
//	type Doors struct {
//	    script.Base
//	    open bool
//	}
//
//	func (d *Doors) Tick() {}
//
//	func (d *Doors) OnMessage(m *message.Message) {
//	    message.Handle(m, func(e message.ButtonEvent) error {
//	        d.open = e.Value
//	        return nil
//	    })
//	}
//
//	func init() { script.Register(&Doors{}) }
//
// Build with GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared.
//
// # Thread Safety
//
// Guest execution is single-threaded: the host invokes init once, then tick and late_tick
// every simulation step. Guest packages hold no locks.
//
// # Memory Model
//
// Every handle has exactly one owner responsible for freeing it. Buffers the guest encodes
// are released after the host call returns unless they are forgotten, in which case the
// receiver must call deallocate with the same address and length. Buffers the host writes
// into guest memory (via the allocate export) are reclaimed by the guest after decoding.
package lotus

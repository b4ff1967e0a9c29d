package host

import (
	"context"

	"go.uber.org/zap"

	lotus "github.com/lotus-sim/lotus-script-go"
	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/script"
	"github.com/lotus-sim/lotus-script-go/sys"
	"github.com/lotus-sim/lotus-script-go/vars"
)

// Guest is a loaded script: either a wasm instance or a native script in loopback.
type Guest interface {
	// Memory is the guest's linear memory, used to read arguments and hand out results.
	Memory() lotus.Memory
	Init(ctx context.Context) error
	RegisterActions(ctx context.Context) error
	Tick(ctx context.Context) error
	LateTick(ctx context.Context) error
	PublicVars(ctx context.Context) ([]vars.Decl, error)
	GlobalVars(ctx context.Context) ([]vars.Decl, error)
	Close(ctx context.Context) error
}

// Loopback runs a native script against a slot. Guest calls go through the same
// handle-encoded imports a wasm guest uses, over a private linear memory.
type Loopback struct {
	slot   *Slot
	runner *script.Runner
	mem    *ffi.LinearMemory
}

var _ Guest = (*Loopback)(nil)

// NewLoopback loads s into slot.
func NewLoopback(slot *Slot, s script.Script) *Loopback {
	pages := slot.vehicle.engine.cfg.LoopbackPages
	l := &Loopback{
		slot:   slot,
		runner: script.NewRunner(s),
		mem:    ffi.NewLinearMemory(pages, 0),
	}
	slot.Load(l)
	return l
}

// Runner returns the runner driving the script.
func (l *Loopback) Runner() *script.Runner { return l.runner }

// LinearMemory returns the loopback memory.
func (l *Loopback) LinearMemory() *ffi.LinearMemory { return l.mem }

func (l *Loopback) Memory() lotus.Memory { return l.mem }

// Do runs fn with the script package bound to this guest. Panics become errors.
func (l *Loopback) Do(fn func()) (err error) {
	restore := sys.Bind(l.mem, l.slot)
	defer restore()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(errors.PhaseRuntime, errors.KindHandler, e, "guest panic")
				return
			}
			err = errors.New(errors.PhaseRuntime, errors.KindHandler).
				Detail("guest panic: %v", r).
				Build()
		}
	}()
	fn()
	return nil
}

func (l *Loopback) Init(context.Context) error            { return l.Do(l.runner.Init) }
func (l *Loopback) RegisterActions(context.Context) error { return l.Do(l.runner.RegisterActions) }
func (l *Loopback) Tick(context.Context) error            { return l.Do(l.runner.Tick) }
func (l *Loopback) LateTick(context.Context) error        { return l.Do(l.runner.LateTick) }

func (l *Loopback) PublicVars(context.Context) ([]vars.Decl, error) {
	return l.decls(script.PublicVars)
}

func (l *Loopback) GlobalVars(context.Context) ([]vars.Decl, error) {
	return l.decls(script.GlobalVars)
}

func (l *Loopback) decls(export func() ffi.Handle) ([]vars.Decl, error) {
	var h ffi.Handle
	if err := l.Do(func() { h = export() }); err != nil {
		return nil, err
	}
	return readDecls(l.mem, h)
}

func (l *Loopback) Close(context.Context) error {
	if n := l.mem.InUse(); n > 0 {
		l.slot.log.Debug("loopback closed with live allocations", zap.Uint32("bytes", n))
	}
	return nil
}

// readDecls decodes a (name, type) list the guest handed over and frees it.
func readDecls(mem lotus.Memory, h ffi.Handle) (decls []vars.Decl, err error) {
	if h.IsEmpty() {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	return vars.FromPairs(ffi.Consume[[][2]string](mem, h)), nil
}

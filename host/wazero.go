package host

import (
	"context"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
	"go.uber.org/zap/zapio"

	lotus "github.com/lotus-sim/lotus-script-go"
	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/vars"
)

const wasiModule = "wasi_snapshot_preview1"

// Guest exports.
const (
	exportAllocate        = "allocate"
	exportDeallocate      = "deallocate"
	exportInit            = "init"
	exportRegisterActions = "register_actions"
	exportTick            = "tick"
	exportLateTick        = "late_tick"
	exportPublicVars      = "public_vars"
	exportGlobalVars      = "global_vars"
)

// Runtime compiles and instantiates script modules. Host import modules are shared by
// every instance; each call finds its slot through the context.
type Runtime struct {
	cfg     Config
	runtime wazero.Runtime
	linked  map[string]map[string]bool
	mu      sync.Mutex
}

// NewRuntime creates a wazero runtime with WASI preview1 instantiated.
func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	cfg = cfg.withDefaults()
	rc := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		rc = rc.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rc)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, errors.Instantiation(err)
	}
	return &Runtime{
		cfg:     cfg,
		runtime: rt,
		linked:  make(map[string]map[string]bool),
	}, nil
}

// Close releases the runtime. Instances must be closed first.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Module is a compiled script whose imports are linked.
type Module struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
}

// Compile compiles wasm and links its imports. Imports the host does not implement
// fail with *errors.MissingImportsError unless StubUnknownImports is set.
func (r *Runtime) Compile(ctx context.Context, wasm []byte) (*Module, error) {
	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}
	if err := r.link(ctx, compiled); err != nil {
		compiled.Close(ctx)
		return nil, err
	}
	return &Module{runtime: r, compiled: compiled}, nil
}

// Close releases the compiled code.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// link instantiates the host modules compiled imports from. A host module is
// instantiated once, so a stub needed after that point cannot be added.
func (r *Runtime) link(ctx context.Context, compiled wazero.CompiledModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stubs := make(map[string][]api.FunctionDefinition)
	needed := make(map[string]bool)
	var missing []string
	for _, def := range compiled.ImportedFunctions() {
		mod, name, _ := def.Import()
		if mod == wasiModule {
			continue
		}
		_, known := hostFuncs[mod][name]
		switch {
		case known:
			needed[mod] = true
		case !r.cfg.StubUnknownImports:
			missing = append(missing, mod+"#"+name)
		case r.linked[mod] != nil:
			if !r.linked[mod][name] {
				missing = append(missing, mod+"#"+name)
			}
		default:
			stubs[mod] = append(stubs[mod], def)
			needed[mod] = true
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.NewMissingImportsError(missing)
	}

	mods := make([]string, 0, len(needed))
	for mod := range needed {
		mods = append(mods, mod)
	}
	sort.Strings(mods)
	for _, mod := range mods {
		if r.linked[mod] != nil {
			continue
		}
		if err := r.instantiateHost(ctx, mod, stubs[mod]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) instantiateHost(ctx context.Context, mod string, stubs []api.FunctionDefinition) error {
	b := r.runtime.NewHostModuleBuilder(mod)
	linked := make(map[string]bool)

	names := make([]string, 0, len(hostFuncs[mod]))
	for name := range hostFuncs[mod] {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn := hostFuncs[mod][name]
		b = b.NewFunctionBuilder().
			WithGoModuleFunction(fn.goFunc(), fn.params, fn.results).
			WithName(name).
			Export(name)
		linked[name] = true
	}
	for _, def := range stubs {
		_, name, _ := def.Import()
		results := def.ResultTypes()
		b = b.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, _ api.Module, stack []uint64) {
				clear(stack[:len(results)])
				if s := slotFrom(ctx); s != nil {
					s.log.Debug("stubbed import called", zap.String("module", mod), zap.String("function", name))
				}
			}), def.ParamTypes(), results).
			Export(name)
		linked[name] = true
	}

	if _, err := b.Instantiate(ctx); err != nil {
		return errors.Instantiation(err)
	}
	r.linked[mod] = linked
	return nil
}

// Load compiles wasm, instantiates it for slot and loads it into the slot.
func (r *Runtime) Load(ctx context.Context, slot *Slot, wasm []byte) (*Instance, error) {
	m, err := r.Compile(ctx, wasm)
	if err != nil {
		return nil, err
	}
	inst, err := m.Instantiate(ctx, slot)
	if err != nil {
		m.Close(ctx)
		return nil, err
	}
	inst.owned = m
	slot.Load(inst)
	return inst, nil
}

// Info reports the public and global variables a script declares, without an engine.
// Unknown imports are stubbed.
func Info(ctx context.Context, wasm []byte) (public, global []vars.Decl, err error) {
	cfg := DefaultConfig()
	cfg.StubUnknownImports = true
	r, err := NewRuntime(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close(ctx)

	m, err := r.Compile(ctx, wasm)
	if err != nil {
		return nil, nil, err
	}
	inst, err := m.Instantiate(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer inst.Close(ctx)

	if public, err = inst.PublicVars(ctx); err != nil {
		return nil, nil, err
	}
	if global, err = inst.GlobalVars(ctx); err != nil {
		return nil, nil, err
	}
	return public, global, nil
}

type slotKey struct{}

func withSlot(ctx context.Context, s *Slot) context.Context {
	return context.WithValue(ctx, slotKey{}, s)
}

func slotFrom(ctx context.Context) *Slot {
	s, _ := ctx.Value(slotKey{}).(*Slot)
	return s
}

// Instance is an instantiated script module. It implements Guest.
type Instance struct {
	module  api.Module
	mem     *GuestMemory
	slot    *Slot
	owned   *Module
	stderr  *zapio.Writer
	exports map[string]api.Function
}

var _ Guest = (*Instance)(nil)

// Instantiate creates an instance bound to slot, running _initialize first. slot may be
// nil, in which case host imports return zero values.
func (m *Module) Instantiate(ctx context.Context, slot *Slot) (*Instance, error) {
	log := Logger()
	if slot != nil {
		log = slot.log
	}
	stderr := &zapio.Writer{Log: log.Named("stderr"), Level: zap.WarnLevel}

	modCfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize").
		WithStderr(stderr)

	ctx = withSlot(ctx, slot)
	mod, err := m.runtime.runtime.InstantiateModule(ctx, m.compiled, modCfg)
	if err != nil {
		stderr.Close()
		return nil, errors.Instantiation(err)
	}

	alloc := mod.ExportedFunction(exportAllocate)
	if alloc == nil {
		mod.Close(ctx)
		stderr.Close()
		return nil, errors.MissingExport(exportAllocate)
	}
	free := mod.ExportedFunction(exportDeallocate)
	if free == nil {
		mod.Close(ctx)
		stderr.Close()
		return nil, errors.MissingExport(exportDeallocate)
	}
	if mod.Memory() == nil {
		mod.Close(ctx)
		stderr.Close()
		return nil, errors.MissingExport("memory")
	}

	return &Instance{
		module:  mod,
		slot:    slot,
		stderr:  stderr,
		exports: make(map[string]api.Function),
		mem: &GuestMemory{
			mem:     mod.Memory(),
			allocFn: alloc,
			freeFn:  free,
			ctx:     ctx,
		},
	}, nil
}

func (i *Instance) export(name string) api.Function {
	if fn, ok := i.exports[name]; ok {
		return fn
	}
	fn := i.module.ExportedFunction(name)
	i.exports[name] = fn
	return fn
}

// call invokes an entry point. A guest that does not export it is treated as a no-op.
func (i *Instance) call(ctx context.Context, name string) ([]uint64, error) {
	fn := i.export(name)
	if fn == nil {
		return nil, nil
	}
	ctx = withSlot(ctx, i.slot)
	i.mem.setContext(ctx)
	res, err := fn.Call(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindHandler, err, name)
	}
	return res, nil
}

func (i *Instance) Memory() lotus.Memory { return i.mem }

func (i *Instance) Init(ctx context.Context) error {
	_, err := i.call(ctx, exportInit)
	return err
}

func (i *Instance) RegisterActions(ctx context.Context) error {
	_, err := i.call(ctx, exportRegisterActions)
	return err
}

func (i *Instance) Tick(ctx context.Context) error {
	_, err := i.call(ctx, exportTick)
	return err
}

func (i *Instance) LateTick(ctx context.Context) error {
	_, err := i.call(ctx, exportLateTick)
	return err
}

func (i *Instance) PublicVars(ctx context.Context) ([]vars.Decl, error) {
	return i.decls(ctx, exportPublicVars)
}

func (i *Instance) GlobalVars(ctx context.Context) ([]vars.Decl, error) {
	return i.decls(ctx, exportGlobalVars)
}

func (i *Instance) decls(ctx context.Context, name string) ([]vars.Decl, error) {
	res, err := i.call(ctx, name)
	if err != nil || len(res) == 0 {
		return nil, err
	}
	return readDecls(i.mem, ffi.Handle(res[0]))
}

// Close closes the module instance and, when it was created by Runtime.Load, its
// compiled code.
func (i *Instance) Close(ctx context.Context) error {
	if i.module == nil {
		return nil
	}
	err := i.module.Close(ctx)
	i.module = nil
	i.stderr.Close()
	if i.owned != nil {
		if cerr := i.owned.Close(ctx); err == nil {
			err = cerr
		}
	}
	return err
}

// GuestMemory is a guest's linear memory. Allocation calls the guest's allocate and
// deallocate exports.
type GuestMemory struct {
	mem     api.Memory
	allocFn api.Function
	freeFn  api.Function
	ctx     context.Context
	mu      sync.Mutex
}

var _ lotus.Memory = (*GuestMemory)(nil)

func (m *GuestMemory) setContext(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = ctx
}

func (m *GuestMemory) context() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

// Allocate calls the guest allocator and panics if it fails.
func (m *GuestMemory) Allocate(size uint32) uint32 {
	res, err := m.allocFn.Call(m.context(), uint64(size))
	if err != nil || len(res) == 0 || (res[0] == 0 && size > 0) {
		panic(errors.New(errors.PhaseHost, errors.KindAllocation).
			Detail("guest allocate(%d)", size).
			Cause(err).
			Build())
	}
	return uint32(res[0])
}

func (m *GuestMemory) Deallocate(ptr, size uint32) {
	if ptr == 0 {
		return
	}
	if _, err := m.freeFn.Call(m.context(), uint64(ptr), uint64(size)); err != nil {
		Logger().Warn("guest deallocate failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

func (m *GuestMemory) Read(ptr, size uint32) ([]byte, bool) {
	if size == 0 {
		return nil, true
	}
	return m.mem.Read(ptr, size)
}

// Size returns the memory size in bytes.
func (m *GuestMemory) Size() uint32 { return m.mem.Size() }

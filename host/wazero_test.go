package host_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lotus-sim/lotus-script-go/errors"
	"github.com/lotus-sim/lotus-script-go/host"
	"github.com/lotus-sim/lotus-script-go/vars"
)

// Minimal wasm encoder for hand-assembled test modules.

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func sleb(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if !done {
			b |= 0x80
		}
		out = append(out, b)
		if done {
			return out
		}
	}
}

func vec(items ...[]byte) []byte {
	out := uleb(uint64(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func name(s string) []byte { return append(uleb(uint64(len(s))), s...) }

func section(id byte, payload []byte) []byte {
	return append(append([]byte{id}, uleb(uint64(len(payload)))...), payload...)
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

const (
	i32 = 0x7f
	i64 = 0x7e
	f32 = 0x7d
)

func functype(params, results []byte) []byte {
	return cat([]byte{0x60}, uleb(uint64(len(params))), params, uleb(uint64(len(results))), results)
}

func body(code ...byte) []byte {
	b := cat([]byte{0x00}, code, []byte{0x0b})
	return append(uleb(uint64(len(b))), b...)
}

var declsBytes = []byte{0x91, 0x92, 0xa5, 's', 'p', 'e', 'e', 'd', 0xa3, 'f', '6', '4'}

const declsAt = 16

type moduleOpts struct {
	unknownImport bool
	noAllocate    bool
}

// testModule exports memory, allocate, deallocate, tick, late_tick and public_vars.
// tick sets the rail brake force of bogie 0 to 42; late_tick calls foo.bar when imported.
func testModule(o moduleOpts) []byte {
	// 0: lifecycle, 1: allocate, 2: deallocate, 3: set_rail_brake_force_newton,
	// 4: public_vars
	types := vec(
		functype(nil, nil),
		functype([]byte{i32}, []byte{i32}),
		functype([]byte{i32, i32}, nil),
		functype([]byte{i32, f32}, nil),
		functype(nil, []byte{i64}),
	)

	imports := [][]byte{
		cat(name("vehicle"), name("set_rail_brake_force_newton"), []byte{0x00, 3}),
	}
	if o.unknownImport {
		imports = append(imports, cat(name("foo"), name("bar"), []byte{0x00, 0}))
	}
	nImports := byte(len(imports))

	handle := int64(declsAt)<<32 | int64(len(declsBytes))
	lateTick := body()
	if o.unknownImport {
		lateTick = body(0x10, 1)
	}

	funcs := [][]byte{{0}, {0}, {4}}
	// tick: i32.const 0; f32.const 42; call 0
	codes := [][]byte{
		body(0x41, 0x00, 0x43, 0x00, 0x00, 0x28, 0x42, 0x10, 0x00),
		lateTick,
		body(cat([]byte{0x42}, sleb(handle))...),
	}
	exports := [][]byte{
		cat(name("memory"), []byte{0x02, 0}),
		cat(name("tick"), []byte{0x00, nImports}),
		cat(name("late_tick"), []byte{0x00, nImports + 1}),
		cat(name("public_vars"), []byte{0x00, nImports + 2}),
	}
	if !o.noAllocate {
		funcs = append(funcs, []byte{1}, []byte{2})
		codes = append(codes, body(cat([]byte{0x41}, sleb(1024))...), body())
		exports = append(exports,
			cat(name("allocate"), []byte{0x00, nImports + 3}),
			cat(name("deallocate"), []byte{0x00, nImports + 4}),
		)
	}

	data := cat([]byte{0x00, 0x41}, sleb(declsAt), []byte{0x0b}, uleb(uint64(len(declsBytes))), declsBytes)

	return cat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(1, types),
		section(2, vec(imports...)),
		section(3, vec(funcs...)),
		section(5, vec([]byte{0x00, 0x01})),
		section(7, vec(exports...)),
		section(10, vec(codes...)),
		section(11, vec(data)),
	)
}

func newRuntime(t *testing.T, cfg host.Config) *host.Runtime {
	t.Helper()
	rt, err := host.NewRuntime(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close(context.Background()) })
	return rt
}

func TestRuntime_LoadAndStep(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, host.Config{})
	e := newEngine(t)
	v := e.AddVehicle(host.VehicleState{Bogies: []host.BogieState{{}}})
	slot := v.AddSlot(host.SlotConfig{Name: "wasm", Cockpit: -1})

	inst, err := rt.Load(ctx, slot, testModule(moduleOpts{}))
	require.NoError(t, err)
	require.Same(t, inst, slot.Guest())

	require.NoError(t, e.Init(ctx))
	require.NoError(t, e.Step(ctx, 0))
	require.Equal(t, float32(42), v.State.Bogies[0].RailBrakeForce)

	decls, err := inst.PublicVars(ctx)
	require.NoError(t, err)
	require.Equal(t, []vars.Decl{{Name: "speed", Type: "f64"}}, decls)
}

func TestRuntime_MissingImports(t *testing.T) {
	rt := newRuntime(t, host.Config{})

	_, err := rt.Compile(context.Background(), testModule(moduleOpts{unknownImport: true}))
	require.Error(t, err)

	var missing *errors.MissingImportsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []errors.MissingImport{{Module: "foo", Function: "bar"}}, missing.Imports)
}

func TestRuntime_StubUnknownImports(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, host.Config{StubUnknownImports: true})
	e := newEngine(t)
	v := e.AddVehicle(host.VehicleState{Bogies: []host.BogieState{{}}})
	slot := v.AddSlot(host.SlotConfig{Name: "stubbed", Cockpit: -1})

	_, err := rt.Load(ctx, slot, testModule(moduleOpts{unknownImport: true}))
	require.NoError(t, err)
	require.NoError(t, e.Step(ctx, 0))
	require.Equal(t, float32(42), v.State.Bogies[0].RailBrakeForce)
}

func TestRuntime_MissingAllocator(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, host.Config{})

	m, err := rt.Compile(ctx, testModule(moduleOpts{noAllocate: true}))
	require.NoError(t, err)
	defer m.Close(ctx)

	_, err = m.Instantiate(ctx, nil)
	require.ErrorIs(t, err, errors.MissingExport("allocate"))
}

func TestInfo(t *testing.T) {
	public, global, err := host.Info(context.Background(), testModule(moduleOpts{unknownImport: true}))
	require.NoError(t, err)
	require.Equal(t, []vars.Decl{{Name: "speed", Type: "f64"}}, public)
	require.Empty(t, global)
}

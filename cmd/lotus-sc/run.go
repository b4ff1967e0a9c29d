package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/host"
	"github.com/lotus-sim/lotus-script-go/vars"
	"github.com/lotus-sim/lotus-script-go/vehicle"
)

// simulation is one script loaded into a single simulated vehicle.
type simulation struct {
	engine *host.Engine
	rt     *host.Runtime
	slot   *host.Slot
	public []vars.Decl
	global []vars.Decl
}

// defaultVehicle is a two-bogie vehicle under a 600 V contact wire.
func defaultVehicle() host.VehicleState {
	axle := host.AxleState{RailQuality: vehicle.Smooth, Surface: vehicle.Gravel}
	bogie := host.BogieState{Axles: []host.AxleState{axle, axle}}
	return host.VehicleState{
		Bogies:      []host.BogieState{bogie, bogie},
		Pantographs: []host.PantographState{{Height: 5.5, Voltage: 600}},
	}
}

func newSimulation(ctx context.Context, cfg host.Config, path string) (*simulation, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rt, err := host.NewRuntime(ctx, cfg)
	if err != nil {
		return nil, err
	}
	engine := host.NewEngine(cfg)
	slot := engine.AddVehicle(defaultVehicle()).AddSlot(host.SlotConfig{Name: "script", Cockpit: 0})

	sim := &simulation{engine: engine, rt: rt, slot: slot}
	inst, err := rt.Load(ctx, slot, wasm)
	if err != nil {
		sim.Close(ctx)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if sim.public, err = inst.PublicVars(ctx); err != nil {
		sim.Close(ctx)
		return nil, err
	}
	if sim.global, err = inst.GlobalVars(ctx); err != nil {
		sim.Close(ctx)
		return nil, err
	}
	if err := engine.Init(ctx); err != nil {
		sim.Close(ctx)
		return nil, err
	}
	return sim, nil
}

// Values returns the current value of every declared variable.
func (s *simulation) Values() map[string]any {
	out := make(map[string]any, len(s.public)+len(s.global))
	v := s.slot.Vehicle()
	for _, d := range append(append([]vars.Decl(nil), s.public...), s.global...) {
		out[d.Name] = v.Var(d.Name)
	}
	return out
}

func (s *simulation) Close(ctx context.Context) error {
	return stderrors.Join(s.engine.Close(ctx), s.rt.Close(ctx))
}

func runCommand(ctx context.Context, args []string) error {
	cfg, err := loadProjectConfig(configFile)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("path", "", "Path to the script wasm file")
	interactive := fs.Bool("i", false, "Interactive mode with TUI")
	ticks := fs.Int("ticks", 60, "Number of ticks to run without -i")
	delta := fs.Duration("delta", time.Duration(cfg.Host.Delta*float64(time.Second)), "Tick length")
	stub := fs.Bool("stub", cfg.Host.StubUnknownImports, "Stub imports the host does not provide")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" && fs.NArg() > 0 {
		*path = fs.Arg(0)
	}
	if *path == "" {
		return fmt.Errorf("run: -path is required")
	}
	cfg.Host.Delta = delta.Seconds()
	cfg.Host.StubUnknownImports = *stub

	if *interactive {
		return runInteractive(ctx, cfg.Host, *path)
	}

	sim, err := newSimulation(ctx, cfg.Host, *path)
	if err != nil {
		return err
	}
	defer sim.Close(ctx)

	var errs []error
	for range *ticks {
		if err := sim.engine.Step(ctx, 0); err != nil {
			errs = append(errs, err)
		}
	}

	out := struct {
		Ticks    uint64         `json:"ticks"`
		GameTime time.Time      `json:"game_time"`
		Vars     map[string]any `json:"vars"`
		Preloads []content.ID   `json:"preloads,omitempty"`
		Errors   int            `json:"errors"`
	}{
		Ticks:    sim.engine.Tick(),
		GameTime: sim.engine.GameTime(),
		Vars:     sim.Values(),
		Preloads: sim.engine.Preloads(),
		Errors:   len(errs),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	return stderrors.Join(errs...)
}

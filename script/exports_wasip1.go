//go:build wasip1

package script

//go:wasmexport init
func exportInit() { Current().Init() }

//go:wasmexport register_actions
func exportRegisterActions() { Current().RegisterActions() }

//go:wasmexport tick
func exportTick() { Current().Tick() }

//go:wasmexport late_tick
func exportLateTick() { Current().LateTick() }

//go:wasmexport public_vars
func exportPublicVars() uint64 { return uint64(PublicVars()) }

//go:wasmexport global_vars
func exportGlobalVars() uint64 { return uint64(GlobalVars()) }

// Package sys declares the host import groups a guest calls and binds them.
//
// Every import takes and returns only integers, floats and packed ffi.Handle values. On
// GOOS=wasip1 the groups are bound to the real wasm imports and the guest heap at startup.
// Elsewhere nothing is bound until Bind is called, which is how the reference host in
// package host runs guest code natively.
//
// # Import modules
//
//	env       is_rc
//	messages  send, take
//	log       write
//	time      delta_f64, ticks_alive, game_time
//	var       get/set for i64, f64, string, bool, content_id
//	rand      f64, u64, seed, random_seed
//	textures  create, add_action, get_pixel, apply_to, flush_actions, dispose
//	font      bitmap_font_properties, text_len
//	vehicle   validity checks, track and pantograph queries, force setters
//	module    module slot identity
//	action    register, state
//	input     mouse_delta
//	gizmo     draw
//	assets    preload
package sys

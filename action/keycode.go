package action

// KeyCode is a physical key. It travels as its snake_case name.
type KeyCode string

const (
	Space          KeyCode = "space"
	ArrowUp        KeyCode = "arrow_up"
	ArrowDown      KeyCode = "arrow_down"
	ArrowLeft      KeyCode = "arrow_left"
	ArrowRight     KeyCode = "arrow_right"
	KeyA           KeyCode = "key_a"
	KeyB           KeyCode = "key_b"
	KeyC           KeyCode = "key_c"
	KeyD           KeyCode = "key_d"
	KeyE           KeyCode = "key_e"
	KeyF           KeyCode = "key_f"
	KeyG           KeyCode = "key_g"
	KeyH           KeyCode = "key_h"
	KeyI           KeyCode = "key_i"
	KeyJ           KeyCode = "key_j"
	KeyK           KeyCode = "key_k"
	KeyL           KeyCode = "key_l"
	KeyM           KeyCode = "key_m"
	KeyN           KeyCode = "key_n"
	KeyO           KeyCode = "key_o"
	KeyP           KeyCode = "key_p"
	KeyQ           KeyCode = "key_q"
	KeyR           KeyCode = "key_r"
	KeyS           KeyCode = "key_s"
	KeyT           KeyCode = "key_t"
	KeyU           KeyCode = "key_u"
	KeyV           KeyCode = "key_v"
	KeyW           KeyCode = "key_w"
	KeyX           KeyCode = "key_x"
	KeyY           KeyCode = "key_y"
	KeyZ           KeyCode = "key_z"
	Digit0         KeyCode = "digit0"
	Digit1         KeyCode = "digit1"
	Digit2         KeyCode = "digit2"
	Digit3         KeyCode = "digit3"
	Digit4         KeyCode = "digit4"
	Digit5         KeyCode = "digit5"
	Digit6         KeyCode = "digit6"
	Digit7         KeyCode = "digit7"
	Digit8         KeyCode = "digit8"
	Digit9         KeyCode = "digit9"
	Numpad0        KeyCode = "numpad0"
	Numpad1        KeyCode = "numpad1"
	Numpad2        KeyCode = "numpad2"
	Numpad3        KeyCode = "numpad3"
	Numpad4        KeyCode = "numpad4"
	Numpad5        KeyCode = "numpad5"
	Numpad6        KeyCode = "numpad6"
	Numpad7        KeyCode = "numpad7"
	Numpad8        KeyCode = "numpad8"
	Numpad9        KeyCode = "numpad9"
	NumpadAdd      KeyCode = "numpad_add"
	NumpadSubtract KeyCode = "numpad_subtract"
	NumpadMultiply KeyCode = "numpad_multiply"
	NumpadDivide   KeyCode = "numpad_divide"
	NumpadDecimal  KeyCode = "numpad_decimal"
	NumpadEnter    KeyCode = "numpad_enter"
)

package message

// Builtin messages are sent by the engine itself.

const builtinNamespace = "builtin"

// TriggerKind tells whether an object entered or left a sensor.
type TriggerKind string

const (
	TriggerEnter TriggerKind = "Enter"
	TriggerLeave TriggerKind = "Leave"
)

// TriggerEvent is sent when an object enters or leaves a sensor's detection area.
type TriggerEvent struct {
	ID          string      `json:"id"`
	SensorIndex int32       `json:"sensor_index"`
	Kind        TriggerKind `json:"kind"`
}

func (TriggerEvent) MessageMeta() Meta { return NewMeta(builtinNamespace, "trigger_event") }

func (e TriggerEvent) IsEnter() bool { return e.Kind == TriggerEnter }
func (e TriggerEvent) IsLeave() bool { return e.Kind == TriggerLeave }

// ButtonEvent is sent when a cockpit button is pressed or released.
type ButtonEvent struct {
	ID           string `json:"id"`
	Value        bool   `json:"value"`
	CockpitIndex uint8  `json:"cockpit_index"`
}

func (ButtonEvent) MessageMeta() Meta { return NewMeta(builtinNamespace, "button_event") }

// BatterySwitch carries the battery main switch state.
type BatterySwitch bool

func (BatterySwitch) MessageMeta() Meta { return NewMeta(builtinNamespace, "battery_switch") }

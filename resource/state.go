package resource

// State is the loading state of a polled resource.
type State uint8

const (
	// Requested means the host is still streaming the resource in; poll again later.
	Requested State = iota
	// Ready means the value is available.
	Ready
	// Unavailable means the resource will not become ready without a new request.
	Unavailable
)

func (s State) String() string {
	switch s {
	case Requested:
		return "requested"
	case Ready:
		return "ready"
	default:
		return "unavailable"
	}
}

// Poll drives one resource through Requested, Ready and Unavailable. fetch returns ok
// once the host reports the resource as loaded.
type Poll[T any] struct {
	fetch func() (T, bool)
	value T
	state State
}

// NewPoll returns a poller in the Requested state.
func NewPoll[T any](fetch func() (T, bool)) *Poll[T] {
	return &Poll[T]{fetch: fetch}
}

// Poll asks the host again while the resource is Requested and returns the new state.
// Ready and Unavailable are sticky.
func (p *Poll[T]) Poll() State {
	if p.state != Requested {
		return p.state
	}
	if v, ok := p.fetch(); ok {
		p.value = v
		p.state = Ready
	}
	return p.state
}

// State returns the state without polling.
func (p *Poll[T]) State() State {
	return p.state
}

// Value returns the loaded value once Ready.
func (p *Poll[T]) Value() (T, bool) {
	return p.value, p.state == Ready
}

// Fail moves the poller to Unavailable and drops any loaded value.
func (p *Poll[T]) Fail() {
	var zero T
	p.value = zero
	p.state = Unavailable
}

// Reset moves the poller back to Requested.
func (p *Poll[T]) Reset() {
	var zero T
	p.value = zero
	p.state = Requested
}

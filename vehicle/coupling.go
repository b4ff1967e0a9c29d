package vehicle

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lotus-sim/lotus-script-go/sys"
)

// Coupling is one end of the vehicle where another vehicle can be attached.
type Coupling uint8

const (
	Front Coupling = iota
	Rear
)

var (
	_ msgpack.CustomEncoder = Coupling(0)
	_ msgpack.CustomDecoder = (*Coupling)(nil)
)

func (c Coupling) String() string {
	if c == Rear {
		return "Rear"
	}
	return "Front"
}

// ParseCoupling parses the wire name of a coupling.
func ParseCoupling(s string) (Coupling, error) {
	switch s {
	case "Front":
		return Front, nil
	case "Rear":
		return Rear, nil
	}
	return 0, fmt.Errorf("unknown coupling %q", s)
}

// IsCoupled reports whether a vehicle is currently attached at c.
func (c Coupling) IsCoupled() bool {
	return sys.Imports().IsCoupled(uint32(c)) == 1
}

func (c Coupling) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(c.String())
}

func (c *Coupling) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	*c, err = ParseCoupling(s)
	return err
}

func (c Coupling) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Coupling) UnmarshalText(text []byte) error {
	v, err := ParseCoupling(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

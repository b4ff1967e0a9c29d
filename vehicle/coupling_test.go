package vehicle

import (
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestCoupling_WireForm(t *testing.T) {
	for _, c := range []Coupling{Front, Rear} {
		data, err := msgpack.Marshal(c)
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := msgpack.Unmarshal(data, &s); err != nil {
			t.Fatal(err)
		}
		if s != c.String() {
			t.Fatalf("encoded %q, want %q", s, c.String())
		}

		var back Coupling
		if err := msgpack.Unmarshal(data, &back); err != nil {
			t.Fatal(err)
		}
		if back != c {
			t.Fatalf("decoded %s, want %s", back, c)
		}
	}
}

func TestParseCoupling(t *testing.T) {
	if _, err := ParseCoupling("Middle"); err == nil {
		t.Fatal("expected error for unknown coupling")
	}
	var c Coupling
	if err := c.UnmarshalText([]byte("Rear")); err != nil || c != Rear {
		t.Fatalf("UnmarshalText = %s, %v", c, err)
	}
}

func TestAxle_VelocityVarName(t *testing.T) {
	a := Axle{bogie: 1, axle: 0}
	if got := a.VelocityVarName(); got != "v_Axle_mps_1_0" {
		t.Fatalf("VelocityVarName = %q", got)
	}
}

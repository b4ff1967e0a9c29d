package vars

import (
	"testing"

	"github.com/lotus-sim/lotus-script-go/content"
)

func TestTypeName(t *testing.T) {
	cases := []struct{ got, want string }{
		{TypeName[int32](), "i32"},
		{TypeName[int64](), "i64"},
		{TypeName[uint32](), "u32"},
		{TypeName[uint64](), "u64"},
		{TypeName[float32](), "f32"},
		{TypeName[float64](), "f64"},
		{TypeName[bool](), "bool"},
		{TypeName[string](), "string"},
		{TypeName[content.ID](), "content_id"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("TypeName = %q, want %q", c.got, c.want)
		}
	}
}

type doorState int32

func TestPublicAndGlobal(t *testing.T) {
	before := len(PublicDecls())
	Public[doorState]("door_state")
	Global[string]("line")

	pub := PublicDecls()
	if len(pub) != before+1 || pub[len(pub)-1] != (Decl{Name: "door_state", Type: "i32"}) {
		t.Fatalf("PublicDecls = %+v", pub)
	}
	glob := GlobalDecls()
	if glob[len(glob)-1] != (Decl{Name: "line", Type: "string"}) {
		t.Fatalf("GlobalDecls = %+v", glob)
	}

	pairs := Pairs(pub)
	if pairs[len(pairs)-1] != [2]string{"door_state", "i32"} {
		t.Fatalf("Pairs = %v", pairs)
	}
	back := FromPairs(pairs)
	for i := range back {
		if back[i] != pub[i] {
			t.Fatalf("FromPairs[%d] = %+v, want %+v", i, back[i], pub[i])
		}
	}
}

package resource

import (
	"testing"
)

// kindOther stands in for a second resource type.
const kindOther Kind = 2

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

type dropCounter struct {
	drops int
}

func (d *dropCounter) Drop() { d.drops++ }

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(KindTexture, "tex")
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok || val != "tex" {
		t.Fatalf("Get = %v, %v", val, ok)
	}

	if _, ok := table.GetTyped(h, KindTexture); !ok {
		t.Fatal("GetTyped with matching kind failed")
	}
	if _, ok := table.GetTyped(h, kindOther); ok {
		t.Fatal("GetTyped with other kind should fail")
	}

	if _, ok := table.Remove(h); !ok {
		t.Fatal("Remove failed")
	}
	if table.Len() != 0 {
		t.Fatalf("Len = %d after Remove", table.Len())
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("Get after Remove should fail")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("double Remove should fail")
	}
}

func TestTable_ReusesFreedHandles(t *testing.T) {
	table := NewTable()
	h1 := table.Insert(KindTexture, 1)
	h2 := table.Insert(KindTexture, 2)
	table.Remove(h1)

	h3 := table.Insert(kindOther, 3)
	if h3 != h1 {
		t.Errorf("handle %d not reused, got %d", h1, h3)
	}
	if v, _ := table.Get(h2); v != 2 {
		t.Errorf("h2 = %v", v)
	}
}

func TestTable_DropAndObserver(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	d := &dropCounter{}
	h := table.Insert(KindTexture, d)
	table.Remove(h)

	if d.drops != 1 {
		t.Errorf("drops = %d, want 1", d.drops)
	}
	if len(obs.events) != 2 {
		t.Fatalf("events = %d, want 2", len(obs.events))
	}
	if obs.events[0].Type != EventCreated || obs.events[1].Type != EventDropped {
		t.Errorf("unexpected event order %+v", obs.events)
	}
	if obs.events[1].Kind != KindTexture {
		t.Errorf("dropped kind = %v", obs.events[1].Kind)
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}
	table.Insert(KindTexture, d)
	table.Insert(kindOther, "font")

	if err := table.Close(); err != nil {
		t.Fatal(err)
	}
	if d.drops != 1 {
		t.Errorf("Close did not drop resources")
	}
	if h := table.Insert(KindTexture, 1); h != 0 {
		t.Errorf("Insert after Close = %d, want 0", h)
	}
	if err := table.Close(); err != ErrClosed {
		t.Errorf("second Close = %v, want ErrClosed", err)
	}
}

func TestPoll(t *testing.T) {
	calls := 0
	p := NewPoll(func() (string, bool) {
		calls++
		return "font", calls >= 3
	})

	if p.State() != Requested {
		t.Fatalf("initial state = %v", p.State())
	}
	if p.Poll() != Requested || p.Poll() != Requested {
		t.Fatal("expected Requested while loading")
	}
	if p.Poll() != Ready {
		t.Fatal("expected Ready on third poll")
	}
	if v, ok := p.Value(); !ok || v != "font" {
		t.Errorf("Value = %q, %v", v, ok)
	}

	p.Poll()
	if calls != 3 {
		t.Errorf("Ready poller fetched again, calls = %d", calls)
	}

	p.Fail()
	if p.Poll() != Unavailable {
		t.Error("Unavailable should be sticky")
	}
	if _, ok := p.Value(); ok {
		t.Error("Value should not be available after Fail")
	}

	p.Reset()
	if p.State() != Requested {
		t.Error("Reset should return to Requested")
	}
}

package resource

import "testing"

func TestPoll_RequestedUntilReady(t *testing.T) {
	calls := 0
	p := NewPoll(func() (string, bool) {
		calls++
		return "font", calls >= 3
	})

	if s := p.State(); s != Requested {
		t.Fatalf("initial state = %s", s)
	}
	for i := 0; i < 2; i++ {
		if s := p.Poll(); s != Requested {
			t.Fatalf("poll %d = %s, want Requested", i, s)
		}
	}
	if _, ok := p.Value(); ok {
		t.Fatal("Value before Ready")
	}
	if s := p.Poll(); s != Ready {
		t.Fatalf("poll 3 = %s, want Ready", s)
	}
	if v, ok := p.Value(); !ok || v != "font" {
		t.Fatalf("Value = %q, %v", v, ok)
	}

	p.Poll()
	if calls != 3 {
		t.Fatalf("fetch called %d times; Ready must not refetch", calls)
	}
}

func TestPoll_FailIsSticky(t *testing.T) {
	p := NewPoll(func() (int, bool) { return 1, true })
	p.Poll()
	p.Fail()

	if s := p.Poll(); s != Unavailable {
		t.Fatalf("state after Fail = %s", s)
	}
	if _, ok := p.Value(); ok {
		t.Fatal("Value after Fail")
	}

	p.Reset()
	if s := p.Poll(); s != Ready {
		t.Fatalf("state after Reset = %s", s)
	}
}

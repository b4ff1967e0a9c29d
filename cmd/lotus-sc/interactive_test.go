package main

import (
	"testing"

	"github.com/lotus-sim/lotus-script-go/content"
)

func TestParseVar(t *testing.T) {
	tests := []struct {
		typ, text string
		want      any
	}{
		{"i32", " -4 ", int64(-4)},
		{"u64", "9", int64(9)},
		{"f32", "1.5", 1.5},
		{"bool", "true", true},
		{"string", "hello", "hello"},
		{"content_id", "12:3", content.ID{UserID: 12, SubID: 3}},
		{"content_id", "12:3@2.5", content.ID{UserID: 12, SubID: 3, Version: 2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.text, func(t *testing.T) {
			got, err := parseVar(tt.typ, tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseVar = %#v, want %#v", got, tt.want)
			}
		})
	}

	for _, bad := range [][2]string{{"i64", "x"}, {"content_id", "12"}, {"vec2", "1"}} {
		if _, err := parseVar(bad[0], bad[1]); err == nil {
			t.Errorf("parseVar(%q, %q) should fail", bad[0], bad[1])
		}
	}
}

func TestFormatVar(t *testing.T) {
	id := content.ID{UserID: 4, SubID: 2, Version: 1.5}
	got, err := parseVar("content_id", formatVar(id))
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Errorf("round trip = %v, want %v", got, id)
	}
	if s := formatVar(0.25); s != "0.25" {
		t.Errorf("formatVar(0.25) = %q", s)
	}
}

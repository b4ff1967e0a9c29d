package vehicle

import (
	"errors"
	"math"
	"testing"
)

func TestErrorFromCode(t *testing.T) {
	tests := []struct {
		code uint32
		want Error
	}{
		{256, VehicleNotFound},
		{512, BogieNotFound},
		{1024, AxleNotFound},
		{2048, PantographNotFound},
		{0, Unknown},
		{1, Unknown},
		{4096, Unknown},
	}

	for _, tt := range tests {
		if got := ErrorFromCode(tt.code); got != tt.want {
			t.Errorf("ErrorFromCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestFromSentinel(t *testing.T) {
	nan := float32(math.NaN())
	posInf := float32(math.Inf(1))
	negInf := float32(math.Inf(-1))

	tests := []struct {
		name    string
		in      float32
		want    float32
		wantErr error
	}{
		{"nan is vehicle", nan, 0, VehicleNotFound},
		{"+inf is axle", posInf, 0, AxleNotFound},
		{"-inf is bogie", negInf, 0, BogieNotFound},
		{"finite", 0.01, 0.01, nil},
		{"negative finite", -0.002, -0.002, nil},
		{"max float", math.MaxFloat32, math.MaxFloat32, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromSentinel(tt.in, BogieNotFound, AxleNotFound)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	if PantographNotFound.Error() != "pantograph not found" {
		t.Errorf("got %q", PantographNotFound.Error())
	}
	if Error(7).Error() != "unknown error" {
		t.Errorf("got %q", Error(7).Error())
	}
}

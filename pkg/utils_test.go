package pkg

import "testing"

func TestContainsAny(t *testing.T) {
	labels := []string{"cpu", "core", "package"}

	if !ContainsAny("coretemp Package id 0", labels) {
		t.Error("expected match on package label")
	}
	if !ContainsAny("CPU Temperature", labels) {
		t.Error("expected case-insensitive match")
	}
	if ContainsAny("nvme composite", labels) {
		t.Error("unexpected match")
	}
	if ContainsAny("anything", nil) {
		t.Error("nil needle list matched")
	}
}

func TestRound1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{33.333333, 33.3},
		{33.35, 33.4},
		{0, 0},
		{99.99, 100},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 100); got != 0 {
		t.Errorf("Clamp(-5) = %v", got)
	}
	if got := Clamp(150, 0, 100); got != 100 {
		t.Errorf("Clamp(150) = %v", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Errorf("Clamp(42) = %v", got)
	}
}

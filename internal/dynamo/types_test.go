package dynamo

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := a.Add(b); got != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := b.Sub(a).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", Vec2{0.5, -3}, true},
		{"NaN", Vec2{math.NaN(), 0}, false},
		{"+Inf", Vec2{0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestRect_Normalize(t *testing.T) {
	r := Rect{Left: 100, Top: 50, Width: 200, Height: 100}

	got := r.Normalize(200, 100)
	if got != (Vec2{0.5, 0.5}) {
		t.Errorf("Normalize center = %v, want {0.5 0.5}", got)
	}
	got = r.Normalize(100, 50)
	if got != (Vec2{0, 0}) {
		t.Errorf("Normalize origin = %v, want {0 0}", got)
	}
	if r.Empty() {
		t.Error("rect should not be empty")
	}
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestManualClock(t *testing.T) {
	var c ManualClock
	c.Advance(16 * time.Millisecond)
	c.Advance(4 * time.Millisecond)
	if c.Now() != 20*time.Millisecond {
		t.Errorf("Now() = %v, want 20ms", c.Now())
	}
	c.Set(time.Second)
	if Millis(c.Now()) != 1000 {
		t.Errorf("Millis = %v, want 1000", Millis(c.Now()))
	}
}

func TestDiagnosticError(t *testing.T) {
	err := &DiagnosticError{Stage: "fragment", Log: "0:3: syntax error", Wrapped: ErrShaderCompile}
	if !errors.Is(err, ErrShaderCompile) {
		t.Error("DiagnosticError should unwrap to ErrShaderCompile")
	}
	if !strings.Contains(err.Error(), "0:3: syntax error") {
		t.Errorf("Error() = %q, missing diagnostic", err.Error())
	}
	if !strings.Contains(err.Error(), "fragment") {
		t.Errorf("Error() = %q, missing stage", err.Error())
	}
}

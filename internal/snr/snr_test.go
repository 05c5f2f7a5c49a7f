package snr

import (
	"errors"
	"math"
	"testing"
)

func defaultInputs() Inputs {
	return Inputs{
		Age:         100,
		Energy:      1.0,
		ISMTemp:     100,
		EjectaMass:  1.4,
		EjectaIndex: 0,
		Density:     2.0,
		TempRatio:   1.0,
		Cooling:     1.0,
		Turbulence:  7.0,
		WindLoss:    1e-7,
		WindSpeed:   30,
		Gamma:       5.0 / 3.0,
		LossFrac:    0.7,
		CloudTau:    2,
		LossStart:   5000,
		HotEnd:      4e5,
		Variant:     Standard,
	}
}

func TestTransitionOrdering(t *testing.T) {
	m := New()
	tr := m.Transitions(defaultInputs())

	if !(tr.ST > 0) {
		t.Fatalf("t_ST must be positive, got %g", tr.ST)
	}
	if tr.PDS <= tr.ST {
		t.Errorf("t_PDS (%g) must follow t_ST (%g)", tr.PDS, tr.ST)
	}
	if tr.MCS < tr.PDS {
		t.Errorf("t_MCS (%g) must not precede t_PDS (%g)", tr.MCS, tr.PDS)
	}
	if tr.Merge <= tr.MCS {
		t.Errorf("merger (%g) must follow t_MCS (%g)", tr.Merge, tr.MCS)
	}
	if tr.Rev <= tr.ST {
		t.Errorf("reverse shock lifetime (%g) must exceed t_ST (%g)", tr.Rev, tr.ST)
	}
}

func TestRecomputeYoungRemnant(t *testing.T) {
	m := New()
	out, err := m.Recompute(defaultInputs())
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if out.Phase != "Free expansion" {
		t.Errorf("100 yr remnant should be in free expansion, got %s", out.Phase)
	}
	if out.ShockRadius <= 0 || out.ShockVelocity <= 0 {
		t.Error("expected positive radius and velocity")
	}
	if out.RevRadius <= 0 || out.RevRadius >= out.ShockRadius {
		t.Errorf("reverse shock radius %g must sit inside the blast wave %g", out.RevRadius, out.ShockRadius)
	}
	if out.ShockTemp <= 0 {
		t.Error("expected positive shock temperature")
	}
}

func TestRadiusMonotonicVelocityDecreasing(t *testing.T) {
	m := New()
	in := defaultInputs()
	_, radius, velocity := m.Curve(in, 100, 1e5, 200)

	for i := 1; i < len(radius); i++ {
		if radius[i] < radius[i-1] {
			t.Fatalf("radius not monotonic at index %d: %g < %g", i, radius[i], radius[i-1])
		}
	}
	if velocity[len(velocity)-1] >= velocity[0] {
		t.Error("shock velocity should decay over the remnant lifetime")
	}
}

func TestMergerRejected(t *testing.T) {
	m := New()
	in := defaultInputs()
	in.Age = 1e9

	_, err := m.Recompute(in)
	if !errors.Is(err, ErrMerged) {
		t.Fatalf("expected ErrMerged, got %v", err)
	}
	var ie *InputError
	if !errors.As(err, &ie) || ie.Param != "t" {
		t.Errorf("expected InputError naming t, got %v", err)
	}
}

func TestParameterBounds(t *testing.T) {
	m := New()
	tests := []struct {
		name   string
		mutate func(*Inputs)
	}{
		{"zero age", func(in *Inputs) { in.Age = 0 }},
		{"negative energy", func(in *Inputs) { in.Energy = -1 }},
		{"zero density", func(in *Inputs) { in.Density = 0 }},
		{"zero wind speed", func(in *Inputs) { in.AmbientIndex = 2; in.WindSpeed = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := defaultInputs()
			tt.mutate(&in)
			if _, err := m.Recompute(in); err == nil {
				t.Error("expected domain error, got nil")
			}
		})
	}
}

func TestLossStartWindow(t *testing.T) {
	m := New()
	in := defaultInputs()
	in.Variant = FractionalLoss
	in.LossStart = 1 // before t_ST

	_, err := m.Recompute(in)
	if !errors.Is(err, ErrLossStart) {
		t.Fatalf("expected ErrLossStart, got %v", err)
	}

	tr := m.Transitions(in)
	in.LossStart = tr.PDS * 0.9
	if _, err := m.Recompute(in); err != nil {
		t.Errorf("start time inside the window should be accepted: %v", err)
	}
}

func TestFractionalLossDeceleratesFaster(t *testing.T) {
	m := New()
	std := defaultInputs()
	std.Age = 3e4

	lossy := std
	lossy.Variant = FractionalLoss
	tr := m.Transitions(std)
	lossy.LossStart = tr.ST * 2

	a, err := m.Recompute(std)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Recompute(lossy)
	if err != nil {
		t.Fatal(err)
	}
	if b.ShockRadius >= a.ShockRadius {
		t.Errorf("lossy remnant (%g pc) should trail the standard one (%g pc)", b.ShockRadius, a.ShockRadius)
	}
}

func TestHotLowDensityEndsModel(t *testing.T) {
	m := New()
	in := defaultInputs()
	in.Variant = HotLowDensity
	in.HotEnd = 4e5
	in.Age = 5e5

	if _, err := m.Recompute(in); !errors.Is(err, ErrMerged) {
		t.Errorf("age beyond t_tw must be rejected, got %v", err)
	}

	in.Age = 1e5
	out, err := m.Recompute(in)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if out.Phase != "Sedov-Taylor" {
		t.Errorf("hot low-density media stays adiabatic, got %s", out.Phase)
	}
}

func TestCloudyISMShrinksRadius(t *testing.T) {
	m := New()
	std := defaultInputs()
	std.Age = 1e4

	cloudy := std
	cloudy.Variant = CloudyISM

	a, _ := m.Recompute(std)
	b, err := m.Recompute(cloudy)
	if err != nil {
		t.Fatal(err)
	}
	if b.ShockRadius >= a.ShockRadius {
		t.Errorf("evaporating clouds should slow the shock: %g >= %g", b.ShockRadius, a.ShockRadius)
	}
}

func TestWindCaseTransitions(t *testing.T) {
	m := New()
	in := defaultInputs()
	in.AmbientIndex = 2

	tr := m.Transitions(in)
	if !(tr.ST > 0) {
		t.Fatalf("wind-case t_ST must be positive, got %g", tr.ST)
	}
	if !math.IsInf(tr.PDS, 1) || !math.IsInf(tr.MCS, 1) {
		t.Error("snowplow phases are not modeled in the wind case")
	}

	in.Age = tr.ST * 10
	out, err := m.Recompute(in)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if out.ShockRadius <= 0 {
		t.Error("expected positive radius in the wind case")
	}
}

func TestMeanMass(t *testing.T) {
	pureH := map[string]float64{"H": 12}
	if got := MeanMass(pureH); math.Abs(got-1.008) > 1e-6 {
		t.Errorf("pure hydrogen mean mass: got %g", got)
	}

	solarish := map[string]float64{"H": 12, "He": 10.93}
	got := MeanMass(solarish)
	if !(got > 1.008 && got < 4.003) {
		t.Errorf("H+He mean mass out of range: %g", got)
	}

	if got := MeanMass(nil); got != 1.4 {
		t.Errorf("empty table should fall back to 1.4, got %g", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(math.Inf(1)); got != "--" {
		t.Errorf("expected -- for unmodeled transition, got %q", got)
	}
	if got := FormatTime(900); got != "900 yr" {
		t.Errorf("got %q", got)
	}
}

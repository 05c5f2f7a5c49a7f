package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/snrlab/snrsim/internal/snr"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		in   snr.Inputs
		want string
	}{
		{"standard", snr.Inputs{Variant: snr.Standard, AmbientIndex: 0, EjectaIndex: 7}, "Standard (s=0, n=7)"},
		{"wind", snr.Inputs{Variant: snr.Standard, AmbientIndex: 2, EjectaIndex: 1}, "Standard (s=2, n=1)"},
		{"cloudy", snr.Inputs{Variant: snr.CloudyISM, CloudTau: 2}, "Cloudy ISM (C/tau=2)"},
		{"lossy", snr.Inputs{Variant: snr.FractionalLoss, LossFrac: 0.7}, "Fractional energy loss (eps=0.7)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlotRendersCurve(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = math.Sqrt(float64(i + 1))
	}

	out := Plot(values, Radius, 60, 10)
	if !strings.Contains(out, "shock radius (pc)") {
		t.Error("plot should carry the axis caption")
	}
	if len(strings.Split(out, "\n")) < 5 {
		t.Error("plot should span the requested height")
	}
}

func TestPlotEmpty(t *testing.T) {
	out := Plot(nil, Velocity, 60, 10)
	if !strings.Contains(out, "no data") {
		t.Errorf("expected placeholder for empty curve, got %q", out)
	}
}

func TestTransitionsLine(t *testing.T) {
	tr := snr.Transitions{ST: 218, PDS: 8950, MCS: math.Inf(1), Merge: 4.7e5}
	line := TransitionsLine(tr)
	if !strings.Contains(line, "t_MCS --") {
		t.Errorf("infinite transition should render as --, got %q", line)
	}
	if !strings.Contains(line, "t_ST") || !strings.Contains(line, "merge") {
		t.Errorf("missing transition labels: %q", line)
	}
}

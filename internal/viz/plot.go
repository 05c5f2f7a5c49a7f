// Package viz renders the remnant evolution curves and their captions for
// the terminal. Rendering is display-only: replotting a stored curve never
// touches the model.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/snrlab/snrsim/internal/snr"
)

// PlotKind selects which evolution curve is on screen.
type PlotKind int

const (
	Radius PlotKind = iota
	Velocity
)

func (k PlotKind) String() string {
	if k == Radius {
		return "radius"
	}
	return "velocity"
}

// Label is the axis caption for the plotted quantity.
func (k PlotKind) Label() string {
	if k == Radius {
		return "shock radius (pc)"
	}
	return "shock velocity (km/s)"
}

// Toggle flips between the two curves.
func (k PlotKind) Toggle() PlotKind {
	if k == Radius {
		return Velocity
	}
	return Radius
}

// Plot renders one curve over the current time window.
func Plot(values []float64, kind PlotKind, width, height int) string {
	if len(values) == 0 {
		return Subtle.Render("no data")
	}
	if width < 20 {
		width = 20
	}
	if height < 5 {
		height = 5
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(kind.Label()),
	)
}

// Title names the active model the way the plot header shows it, including
// the discriminants or the variant's defining parameter.
func Title(in snr.Inputs) string {
	switch in.Variant {
	case snr.FractionalLoss:
		return fmt.Sprintf("%s (eps=%.2g)", in.Variant, in.LossFrac)
	case snr.HotLowDensity:
		return fmt.Sprintf("%s (t_tw=%.3g yr)", in.Variant, in.HotEnd)
	case snr.CloudyISM:
		return fmt.Sprintf("%s (C/tau=%.3g)", in.Variant, in.CloudTau)
	default:
		return fmt.Sprintf("%s (s=%.0f, n=%.0f)", in.Variant, in.AmbientIndex, in.EjectaIndex)
	}
}

// TransitionsLine formats the phase-transition times for the footer.
// Unmodeled transitions render as "--".
func TransitionsLine(tr snr.Transitions) string {
	parts := []string{
		"t_ST " + snr.FormatTime(tr.ST),
		"t_PDS " + snr.FormatTime(tr.PDS),
		"t_MCS " + snr.FormatTime(tr.MCS),
		"merge " + snr.FormatTime(tr.Merge),
	}
	return strings.Join(parts, "   ")
}

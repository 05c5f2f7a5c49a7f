package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/snrlab/snrsim/internal/abundance"
	"github.com/snrlab/snrsim/internal/axis"
	"github.com/snrlab/snrsim/internal/config"
)

func newTestCore(t *testing.T) *core {
	t.Helper()
	c := newCore(config.DefaultConfig())
	if c.out == nil {
		t.Fatal("initial recompute should succeed with defaults")
	}
	if c.status != "" {
		t.Fatalf("unexpected status after init: %q", c.status)
	}
	return c
}

func TestInitialState(t *testing.T) {
	c := newTestCore(t)

	if c.byID["m_w"].visible || c.byID["v_w"].visible {
		t.Error("wind parameters should be hidden on the uniform ISM")
	}
	if c.byID["t_tw"].visible || c.byID["c_tau"].visible {
		t.Error("variant parameters should be hidden under the standard model")
	}
	if !c.byID["s"].enabled {
		t.Error("ambient index should be editable under the standard model")
	}
	if len(c.plotValues()) == 0 {
		t.Error("expected an initial curve")
	}
}

func TestRejectedRecomputeRetainsOutputs(t *testing.T) {
	c := newTestCore(t)
	prev := c.out

	if !c.setParam("t", 1e9) {
		t.Fatal("registry accepts the value; the model rejects it")
	}
	if c.status == "" {
		t.Error("merged remnant should surface on the status line")
	}
	if c.out != prev {
		t.Error("prior outputs must stay on screen after a model error")
	}
}

func TestWindowEditReplotsWithoutRecompute(t *testing.T) {
	c := newTestCore(t)
	prev := c.out
	prevCurve := c.curve

	if _, ok := c.window.Bump(axis.BoundMax, -1); !ok {
		t.Fatal("bump rejected")
	}
	if c.out != prev {
		t.Error("axis edits must not recompute the model")
	}
	if c.curve == prevCurve {
		t.Error("axis edits must replot")
	}
	if c.window.Mode != axis.ModeCustom {
		t.Error("manual window edit should force the custom mode")
	}
}

func TestParameterEditRecomputes(t *testing.T) {
	c := newTestCore(t)
	prev := c.out

	if !c.setParam("n_0", 0.5) {
		t.Fatal("edit rejected")
	}
	if c.out == prev {
		t.Error("parameter edit should recompute")
	}
}

func TestToggleAmbient(t *testing.T) {
	c := newTestCore(t)

	c.toggleAmbient()
	if !c.byID["m_w"].visible {
		t.Error("wind parameters should appear on the wind profile")
	}
	if got := c.inputs().AmbientIndex; got != 2 {
		t.Errorf("expected s=2, got %g", got)
	}

	c.toggleAmbient()
	if c.byID["m_w"].visible {
		t.Error("wind parameters should hide again on the uniform ISM")
	}
}

func TestCycleEjectaIndex(t *testing.T) {
	c := newTestCore(t)

	c.cycleEjectaIndex(1)
	if got := c.reg.Get("n"); got != 2 {
		t.Errorf("expected n=2 after one step, got %g", got)
	}
	c.cycleEjectaIndex(-1)
	if got := c.reg.Get("n"); got != 0 {
		t.Errorf("expected n=0 after stepping back, got %g", got)
	}
}

func TestAbundanceCommitRecomputes(t *testing.T) {
	c := newTestCore(t)
	prev := c.out

	ed, refocused := c.session.Open(abundance.ISM)
	if refocused {
		t.Fatal("no editor should be open yet")
	}
	if !ed.SetElement("Fe", 8.0) {
		t.Fatal("edit rejected")
	}
	if c.out != prev {
		t.Error("working-copy edits must not recompute")
	}

	ed.Commit()
	if c.out == prev {
		t.Error("commit should fire exactly one recompute")
	}
}

func TestAbundanceCancelDiscards(t *testing.T) {
	c := newTestCore(t)
	prev := c.out

	ed, _ := c.session.Open(abundance.Ejecta)
	ed.SetElement("O", 9.0)
	ed.Cancel()

	if c.out != prev {
		t.Error("cancel must not recompute")
	}
	if got := c.session.Table(abundance.Ejecta).Values["O"]; got == 9.0 {
		t.Error("cancel must not touch the committed table")
	}
}

func TestCycleWindowMode(t *testing.T) {
	c := newTestCore(t)

	c.cycleWindowMode(1)
	if c.window.Mode != axis.ModeReverseShock {
		t.Fatalf("expected reverse-shock window, got %v", c.window.Mode)
	}
	if !(c.window.Max > c.window.Min) {
		t.Error("named window should derive non-empty bounds")
	}
}

func TestResetDefaults(t *testing.T) {
	c := newTestCore(t)
	c.toggleAmbient()
	c.setParam("n_0", 9.0)
	prev := c.out

	c.resetDefaults()
	if c.byID["m_w"].visible {
		t.Error("reset should return to the uniform ISM")
	}
	if got := c.reg.Get("n_0"); got != 2.0 {
		t.Errorf("density should revert to its default, got %g", got)
	}
	if c.out == prev {
		t.Error("reset should recompute")
	}
	if c.status != "" {
		t.Errorf("reset state should be valid, got %q", c.status)
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(math.NaN()); got != "N/A" {
		t.Errorf("NaN should render as N/A, got %q", got)
	}
	if got := formatValue(1.4); got != "1.4" {
		t.Errorf("got %q", got)
	}
}

func TestViewRendersHiddenRowsAbsent(t *testing.T) {
	m := NewApp(config.DefaultConfig())
	out := m.View()

	if strings.Contains(out, "wind mass loss") {
		t.Error("hidden wind row leaked into the main view")
	}
	if !strings.Contains(out, "Standard") {
		t.Error("view should carry the model title")
	}
}

func TestViewWindProfileShowsWindRows(t *testing.T) {
	cfg := config.GetPreset("wind-bubble")
	m := NewApp(cfg)
	out := m.View()

	if !strings.Contains(out, "wind mass loss") {
		t.Error("wind rows should be visible under the wind profile")
	}
}

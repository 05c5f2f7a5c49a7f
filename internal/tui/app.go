// Package tui is the interactive explorer: a parameter panel wired to the
// dependency rule engine on the left, the evolution plot on the right, and
// modal abundance editors on top.
package tui

import (
	"math"

	"github.com/snrlab/snrsim/internal/abundance"
	"github.com/snrlab/snrsim/internal/axis"
	"github.com/snrlab/snrsim/internal/config"
	"github.com/snrlab/snrsim/internal/notify"
	"github.com/snrlab/snrsim/internal/params"
	"github.com/snrlab/snrsim/internal/rules"
	"github.com/snrlab/snrsim/internal/snr"
	"github.com/snrlab/snrsim/internal/storage"
	"github.com/snrlab/snrsim/internal/viz"
)

// windowLimit caps the plotted-time window.
const windowLimit = 1e7

// paramRow is one line of the input panel. It satisfies the rule engine's
// widget contract so rule transitions drive it directly.
type paramRow struct {
	id      string
	label   string
	unit    string
	visible bool
	enabled bool
	value   float64
}

func (r *paramRow) SetVisible(v bool)  { r.visible = v }
func (r *paramRow) SetEnabled(v bool)  { r.enabled = v }
func (r *paramRow) SetValue(v float64) { r.value = v }

// rowDefs lists the input panel in display order with defaults and validity.
var rowDefs = []struct {
	id, label, unit string
	def             float64
	valid           params.Predicate
}{
	{"t", "age", "yr", config.DefaultAge, params.GreaterThanZero},
	{"e51", "energy", "1e51 erg", config.DefaultEnergy, params.GreaterThanZero},
	{"temp_ism", "ISM temperature", "K", config.DefaultISMTemp, params.GreaterThanZero},
	{"m_eject", "ejecta mass", "Msun", config.DefaultMass, params.GreaterThanZero},
	{"n", "ejecta index n", "", 0, nil},
	{"s", "ambient index s", "", 0, nil},
	{"n_0", "ISM density", "cm^-3", config.DefaultDensity, params.GreaterThanZero},
	{"t_ratio", "Te/Ti ratio", "", 1.0, params.GreaterThanZero},
	{"zeta_m", "cooling factor", "", config.DefaultCooling, params.GreaterThanZero},
	{"sigma_v", "ISM turbulence", "km/s", config.DefaultSigma, params.GreaterThanZero},
	{"m_w", "wind mass loss", "Msun/yr", config.DefaultWindLoss, params.GreaterThanZero},
	{"v_w", "wind speed", "km/s", config.DefaultWindSpeed, params.GreaterThanZero},
	{"t_lk", "loss start time", "yr", config.DefaultLossStart, params.GreaterThanZero},
	{"gamma_0", "adiabatic index", "", config.DefaultGamma, params.GreaterThanZero},
	{"eps", "loss fraction", "", config.DefaultLossFrac, fractionPredicate},
	{"t_tw", "model end time", "yr", config.DefaultHotEnd, params.GreaterThanZero},
	{"c_tau", "C/tau", "", config.DefaultCloudTau, params.GreaterThanZero},
}

func fractionPredicate(v float64, _ params.Snapshot) bool { return v > 0 && v <= 1 }

// core is the session state behind the view: the registry, the rule engine,
// the physics model, the abundance session, and the plotted window. The
// bubbletea model delegates every domain mutation here.
type core struct {
	reg     *params.Registry
	engine  *rules.Engine
	trigger *notify.Trigger
	phys    *snr.Model
	session *abundance.Session
	window  *axis.Range
	plot    viz.PlotKind

	rows []*paramRow
	byID map[string]*paramRow

	out    *snr.Outputs
	curve  *storage.Curve
	status string
}

func newCore(cfg *config.Config) *core {
	c := &core{
		reg:  params.New(),
		phys: snr.New(),
		byID: make(map[string]*paramRow),
	}

	for _, def := range rowDefs {
		c.reg.Add(params.Param{
			ID: def.id, Default: def.def, Valid: def.valid,
			Enabled: true, Visible: true,
		})
		row := &paramRow{
			id: def.id, label: def.label, unit: def.unit,
			visible: true, enabled: true, value: def.def,
		}
		c.rows = append(c.rows, row)
		c.byID[def.id] = row
	}

	c.trigger = notify.New(c.recompute)
	c.engine = rules.NewEngine(c.reg, c, c.trigger)
	for id, row := range c.byID {
		c.engine.Bind(id, row)
	}
	c.session = abundance.NewSession(func(abundance.Kind) { c.trigger.Changed(true) })
	c.window = axis.NewRange(cfg.Plot.Min, cfg.Plot.Max, windowLimit, c.replot)
	if cfg.Plot.Kind == "velocity" {
		c.plot = viz.Velocity
	}

	c.applyConfig(cfg)
	c.recompute()
	return c
}

// applyConfig seeds the registry and the two discriminants from a loaded
// configuration, with the rule cascade suppressed until the first recompute.
func (c *core) applyConfig(cfg *config.Config) {
	seed := map[string]float64{
		"t": cfg.Physical.Age, "e51": cfg.Physical.Energy,
		"temp_ism": cfg.Physical.ISMTemp, "m_eject": cfg.Physical.EjectaMass,
		"n_0": cfg.Physical.Density, "t_ratio": cfg.Physical.TempRatio,
		"zeta_m": cfg.Physical.Cooling, "sigma_v": cfg.Physical.Turbulence,
		"m_w": cfg.Wind.MassLoss, "v_w": cfg.Wind.Speed,
		"gamma_0": cfg.VariantOpt.Gamma, "eps": cfg.VariantOpt.LossFrac,
		"t_lk": cfg.VariantOpt.LossStart, "t_tw": cfg.VariantOpt.HotEnd,
		"c_tau": cfg.VariantOpt.CloudTau,
	}
	for id, v := range seed {
		if c.reg.Set(id, v) {
			c.byID[id].value = v
		}
	}

	ambient := rules.AmbientUniform
	if cfg.Physical.AmbientIndex == 2 {
		ambient = rules.AmbientWind
	}
	variant, err := cfg.Variant()
	if err != nil {
		variant = snr.Standard
	}
	c.engine.Init(ambient, variant)
	c.reg.Force("s", ambient.Value())
	c.byID["s"].value = ambient.Value()
	c.engine.SetEjectaIndex(cfg.Physical.EjectaIndex, false)

	c.session.Table(abundance.ISM).ApplyPreset(cfg.Abundances.ISM)
	c.session.Table(abundance.Ejecta).ApplyPreset(cfg.Abundances.Ejecta)
}

// CoolingTime and PressureDrivenTime feed the rule engine's variant gate
// from the current transition times.
func (c *core) CoolingTime() float64 {
	return c.phys.Transitions(c.inputs()).Core
}

func (c *core) PressureDrivenTime() float64 {
	return c.phys.Transitions(c.inputs()).PDS
}

// inputs snapshots the registry and collaborators into one model input.
func (c *core) inputs() snr.Inputs {
	return snr.Inputs{
		Age:          c.reg.Get("t"),
		Energy:       c.reg.Get("e51"),
		ISMTemp:      c.reg.Get("temp_ism"),
		EjectaMass:   c.reg.Get("m_eject"),
		EjectaIndex:  c.reg.Get("n"),
		AmbientIndex: c.engine.Ambient().Value(),
		Density:      c.reg.Get("n_0"),
		TempRatio:    c.reg.Get("t_ratio"),
		Cooling:      c.reg.Get("zeta_m"),
		Turbulence:   c.reg.Get("sigma_v"),
		WindLoss:     c.reg.Get("m_w"),
		WindSpeed:    c.reg.Get("v_w"),
		Gamma:        c.reg.Get("gamma_0"),
		LossFrac:     c.reg.Get("eps"),
		CloudTau:     c.reg.Get("c_tau"),
		LossStart:    c.reg.Get("t_lk"),
		HotEnd:       c.reg.Get("t_tw"),
		Variant:      c.engine.Variant(),
		MuISM:        snr.MeanMass(c.session.Table(abundance.ISM).Values),
		MuEjecta:     snr.MeanMass(c.session.Table(abundance.Ejecta).Values),
	}
}

// recompute re-evaluates the model. On a domain error the previous outputs
// and curve stay on screen and the error goes to the status line.
func (c *core) recompute() {
	out, err := c.phys.Recompute(c.inputs())
	if err != nil {
		c.status = err.Error()
		return
	}
	c.out = out
	c.status = ""
	c.refreshWindow()
}

// refreshWindow re-derives a named window from the new transition times, or
// just replots when the window is custom.
func (c *core) refreshWindow() {
	if c.window.Mode == axis.ModeCustom {
		c.replot()
		return
	}
	min, max := c.presetWindow(c.window.Mode)
	c.window.SetPreset(c.window.Mode, min, max)
}

// presetWindow derives the bounds of a named window from the current
// transition times.
func (c *core) presetWindow(m axis.Mode) (float64, float64) {
	lo := 10.0
	if c.out == nil {
		return lo, c.reg.Get("t") * 2
	}
	tr := c.out.Trans
	var hi float64
	switch m {
	case axis.ModeReverseShock:
		hi = tr.Rev
	case axis.ModeEDST:
		hi = tr.ST * 3
	case axis.ModePDS:
		hi = tr.PDS
	case axis.ModeMCS:
		hi = tr.MCS
	default:
		hi = c.reg.Get("t") * 2
	}
	if math.IsInf(hi, 1) || hi <= lo {
		hi = windowLimit
	}
	return lo, hi
}

// replot resamples the curve over the current window. Axis edits reach here
// directly and never trigger a recompute.
func (c *core) replot() {
	if c.out == nil {
		return
	}
	times, radius, velocity := c.phys.Curve(c.inputs(), c.window.Min, c.window.Max, 120)
	c.curve = &storage.Curve{Times: times, Radius: radius, Velocity: velocity}
}

// plotValues returns the on-screen curve for the selected quantity.
func (c *core) plotValues() []float64 {
	if c.curve == nil {
		return nil
	}
	if c.plot == viz.Radius {
		return c.curve.Radius
	}
	return c.curve.Velocity
}

// setParam commits a typed-in value for a regular parameter. Rejected values
// leave the row untouched and report on the status line.
func (c *core) setParam(id string, v float64) bool {
	if !c.reg.Set(id, v) {
		c.status = "value out of range for " + id
		return false
	}
	c.byID[id].value = v
	c.status = ""
	c.trigger.Changed(true)
	return true
}

// cycleEjectaIndex steps n through the domain allowed under the current
// ambient index.
func (c *core) cycleEjectaIndex(dir int) {
	domain := c.engine.NDomain()
	cur := c.reg.Get("n")
	idx := 0
	for i, v := range domain {
		if v == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(domain)) % len(domain)
	c.engine.SetEjectaIndex(domain[idx], true)
}

// toggleAmbient flips the ambient index, keeping the registry's s in sync.
func (c *core) toggleAmbient() {
	next := rules.AmbientWind
	if c.engine.Ambient() == rules.AmbientWind {
		next = rules.AmbientUniform
	}
	c.reg.Force("s", next.Value())
	c.byID["s"].value = next.Value()
	c.engine.SetAmbient(next, true)
}

// cycleVariant steps through the model variants currently allowed.
func (c *core) cycleVariant(dir int) {
	all := snr.Variants()
	allowed := make([]snr.Variant, 0, len(all))
	for _, v := range all {
		if c.engine.Allowed(v) {
			allowed = append(allowed, v)
		}
	}
	idx := 0
	for i, v := range allowed {
		if v == c.engine.Variant() {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(allowed)) % len(allowed)
	c.engine.SetVariant(allowed[idx], true)
}

// cycleWindowMode steps through the named windows; entering a named window
// re-derives its bounds, entering Custom keeps the current bounds.
func (c *core) cycleWindowMode(dir int) {
	modes := axis.Modes()
	idx := 0
	for i, m := range modes {
		if m == c.window.Mode {
			idx = i
			break
		}
	}
	next := modes[(idx+dir+len(modes))%len(modes)]
	if next == axis.ModeCustom {
		c.window.SetPreset(axis.ModeCustom, 0, 0)
		return
	}
	min, max := c.presetWindow(next)
	c.window.SetPreset(next, min, max)
}

// resetDefaults reverts every parameter and both discriminants. The whole
// cascade is batched into a single recompute.
func (c *core) resetDefaults() {
	c.trigger.Batch(func() {
		for _, def := range rowDefs {
			c.reg.RevertToDefault(def.id)
			c.byID[def.id].value = def.def
		}
		c.engine.SetAmbient(rules.AmbientUniform, true)
		c.engine.SetVariant(snr.Standard, true)
	})
}

// saveSession persists the current evaluation and curve to the data
// directory and reports the generated id on the status line.
func (c *core) saveSession(dataDir string) {
	if c.out == nil || c.curve == nil {
		c.status = "nothing to save"
		return
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		c.status = err.Error()
		return
	}
	id, err := st.Save(c.metadata(), c.curve)
	if err != nil {
		c.status = err.Error()
		return
	}
	c.status = "saved " + id
}

// metadata summarizes the current evaluation for the session store.
func (c *core) metadata() storage.SessionMetadata {
	meta := storage.SessionMetadata{
		Model:        c.engine.Variant().String(),
		Age:          c.reg.Get("t"),
		AmbientIndex: c.engine.Ambient().Value(),
		EjectaIndex:  c.reg.Get("n"),
	}
	if c.out != nil {
		meta.Phase = c.out.Phase
		meta.ShockRadius = c.out.ShockRadius
		meta.ShockVel = c.out.ShockVelocity
	}
	return meta
}

// Package rules evaluates the discriminant-driven dependency rules over the
// parameter registry: which inputs are relevant, valid, or visible given the
// ambient-index and model-variant selections.
package rules

import (
	"github.com/snrlab/snrsim/internal/notify"
	"github.com/snrlab/snrsim/internal/params"
	"github.com/snrlab/snrsim/internal/snr"
)

// AmbientIndex is the two-valued ambient-media discriminant: a uniform ISM
// (s = 0) or a stellar wind profile (s = 2).
type AmbientIndex int

const (
	AmbientUniform AmbientIndex = iota // s = 0
	AmbientWind                        // s = 2
)

func (a AmbientIndex) String() string {
	if a == AmbientUniform {
		return "0"
	}
	return "2"
}

// Value is the power-law index fed to the model.
func (a AmbientIndex) Value() float64 {
	if a == AmbientUniform {
		return 0
	}
	return 2
}

// Widget is the capability set the engine needs from a presentation-layer
// control. The engine never touches a concrete widget type.
type Widget interface {
	SetVisible(bool)
	SetEnabled(bool)
	SetValue(float64)
}

// TimeSource supplies the externally-computed transition times consumed by
// the ambient-index rule. The physics collaborator implements it.
type TimeSource interface {
	CoolingTime() float64        // t_c
	PressureDrivenTime() float64 // t_PDS
}

// Ejecta power-law index domains per ambient index. The uniform-ISM domain
// is the expanded one; the wind domain is the fixed four-value set.
var (
	nDomainUniform = []float64{0, 2, 4, 6, 7, 8, 9, 10, 12, 14}
	nDomainWind    = []float64{0, 1, 2, 7}
)

// windParams are hidden entirely when the ambient medium is uniform.
var windParams = []string{"m_w", "v_w"}

// variantEffects is one row of the rule table: which variant-specific
// parameters become visible and whether the ambient index stays editable.
type variantEffects struct {
	show            []string
	ambientEditable bool
}

// variantRules covers every variant; exactly one group is visible at a time.
var variantRules = map[snr.Variant]variantEffects{
	snr.Standard:       {ambientEditable: true},
	snr.FractionalLoss: {show: []string{"t_lk", "gamma_0", "eps"}},
	snr.HotLowDensity:  {show: []string{"t_tw"}},
	snr.CloudyISM:      {show: []string{"c_tau"}},
}

// variantParams is the union of all variant-specific parameter groups.
var variantParams = []string{"t_lk", "gamma_0", "eps", "t_tw", "c_tau"}

// Engine owns the two discriminants and applies their rule sets to the
// registry and widgets. Applying a rule set is idempotent: reapplying with
// the same discriminant value yields the same resulting states.
type Engine struct {
	reg     *params.Registry
	widgets map[string]Widget
	times   TimeSource
	trigger *notify.Trigger

	ambient AmbientIndex
	variant snr.Variant
	allowed map[snr.Variant]bool
}

func NewEngine(reg *params.Registry, times TimeSource, trigger *notify.Trigger) *Engine {
	return &Engine{
		reg:     reg,
		widgets: make(map[string]Widget),
		times:   times,
		trigger: trigger,
		ambient: AmbientUniform,
		variant: snr.Standard,
		allowed: map[snr.Variant]bool{snr.Standard: true},
	}
}

// Bind attaches a presentation control to a parameter identifier. Widgets
// are optional; rules always apply to the registry regardless.
func (e *Engine) Bind(id string, w Widget) {
	e.widgets[id] = w
}

func (e *Engine) Ambient() AmbientIndex { return e.ambient }

func (e *Engine) Variant() snr.Variant { return e.variant }

func (e *Engine) Allowed(v snr.Variant) bool { return e.allowed[v] }

// NDomain is the ejecta-index domain allowed under the current ambient
// index.
func (e *Engine) NDomain() []float64 {
	if e.ambient == AmbientUniform {
		return nDomainUniform
	}
	return nDomainWind
}

// Init applies both rule sets once with recomputation suppressed, for bulk
// initialization before the first recompute.
func (e *Engine) Init(ambient AmbientIndex, variant snr.Variant) {
	e.SetAmbient(ambient, false)
	e.SetVariant(variant, false)
}

// SetAmbient transitions the ambient-index discriminant. On the uniform
// ISM the wind parameters are hidden and the model-variant set expands; on
// the wind profile they return and the set contracts. If the current ejecta
// index is outside the new domain it is forced to the domain minimum before
// any recompute fires.
func (e *Engine) SetAmbient(a AmbientIndex, update bool) {
	e.ambient = a

	switch a {
	case AmbientUniform:
		e.setParamsVisible(windParams, false)
		e.allowed[snr.FractionalLoss] = true
		e.allowed[snr.CloudyISM] = true
		e.allowed[snr.HotLowDensity] = 0.1*e.times.CoolingTime() <= e.times.PressureDrivenTime()
	case AmbientWind:
		e.setParamsVisible(windParams, true)
		e.allowed[snr.FractionalLoss] = false
		e.allowed[snr.CloudyISM] = false
		e.allowed[snr.HotLowDensity] = false
	}

	domain := e.NDomain()
	if !contains(domain, e.reg.Get("n")) {
		e.forceValue("n", domain[0])
	}

	e.trigger.Changed(update)
}

// SetVariant transitions the model-variant discriminant, driving the three
// variant-specific parameter groups and the enablement of the ambient index
// itself. A variant outside the currently allowed set is ignored.
func (e *Engine) SetVariant(v snr.Variant, update bool) {
	if !e.allowed[v] {
		return
	}
	e.variant = v
	effects := variantRules[v]

	shown := make(map[string]bool, len(effects.show))
	for _, id := range effects.show {
		shown[id] = true
	}
	for _, id := range variantParams {
		e.setVisible(id, shown[id])
	}

	// The hot low-density end time does not survive hiding: it reads N/A
	// while disabled and is reverted, not defaulted, on reveal.
	if v == snr.HotLowDensity {
		e.reg.RevertToLast("t_tw")
		e.reg.SetEnabled("t_tw", true)
		e.syncWidget("t_tw")
	} else {
		e.reg.SetEnabled("t_tw", false)
		e.reg.Force("t_tw", params.NA)
		e.syncWidget("t_tw")
	}

	// The ambient index is user-editable only under the standard model.
	e.reg.SetEnabled("s", effects.ambientEditable)
	if w, ok := e.widgets["s"]; ok {
		w.SetEnabled(effects.ambientEditable)
	}

	e.trigger.Changed(update)
}

// SetEjectaIndex commits an ejecta index if it belongs to the current
// domain.
func (e *Engine) SetEjectaIndex(n float64, update bool) bool {
	if !contains(e.NDomain(), n) {
		return false
	}
	if !e.reg.Set("n", n) {
		return false
	}
	e.syncWidget("n")
	e.trigger.Changed(update)
	return true
}

func (e *Engine) setParamsVisible(ids []string, visible bool) {
	for _, id := range ids {
		e.setVisible(id, visible)
	}
}

func (e *Engine) setVisible(id string, visible bool) {
	e.reg.SetVisible(id, visible)
	if w, ok := e.widgets[id]; ok {
		w.SetVisible(visible)
	}
}

func (e *Engine) forceValue(id string, v float64) {
	e.reg.Force(id, v)
	e.syncWidget(id)
}

func (e *Engine) syncWidget(id string) {
	if w, ok := e.widgets[id]; ok {
		w.SetValue(e.reg.Get(id))
		if p := e.reg.Param(id); p != nil {
			w.SetEnabled(p.Enabled)
			w.SetVisible(p.Visible)
		}
	}
}

func contains(domain []float64, v float64) bool {
	for _, d := range domain {
		if d == v {
			return true
		}
	}
	return false
}

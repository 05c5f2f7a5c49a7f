// Package snr is the physics collaborator: a piecewise supernova-remnant
// evolution model producing shock radius/velocity curves, electron
// temperatures, and the phase-transition times the input rules consume.
// Phases: free expansion, Sedov-Taylor, pressure-driven snowplow,
// momentum-conserving snowplow, merger.
package snr

import (
	"fmt"
	"math"
)

// Variant selects the evolution model. The standard model follows the usual
// adiabatic-radiative phase sequence; the others modify the late evolution.
type Variant int

const (
	Standard Variant = iota
	FractionalLoss
	HotLowDensity
	CloudyISM
)

var variantNames = map[Variant]string{
	Standard:       "Standard",
	FractionalLoss: "Fractional energy loss",
	HotLowDensity:  "Hot low-density media",
	CloudyISM:      "Cloudy ISM",
}

func (v Variant) String() string { return variantNames[v] }

// Variants lists every model variant in display order.
func Variants() []Variant {
	return []Variant{Standard, FractionalLoss, HotLowDensity, CloudyISM}
}

// cgs constants
const (
	yr   = 3.156e7  // s
	pc   = 3.086e18 // cm
	msun = 1.989e33 // g
	mH   = 1.6726e-24
	kB   = 1.3807e-16
	kmps = 1.0e5
)

// Inputs is a value snapshot of every physical parameter a recompute needs.
// Times are in years, masses in solar masses, speeds in km/s unless noted.
type Inputs struct {
	Age          float64 // t
	Energy       float64 // explosion energy / 1e51 erg
	ISMTemp      float64 // K
	EjectaMass   float64
	EjectaIndex  float64 // power-law index n
	AmbientIndex float64 // power-law index s: 0 uniform, 2 wind
	Density      float64 // ISM number density, cm^-3
	TempRatio    float64 // electron to ion temperature ratio Te/Ti
	Cooling      float64 // cooling adjustment factor zeta_m
	Turbulence   float64 // ISM turbulence/random speed sigma_v
	WindLoss     float64 // stellar wind mass loss, Msun/yr (s=2 only)
	WindSpeed    float64 // wind speed, km/s (s=2 only)
	Gamma        float64 // adiabatic index gamma_0 (fractional-loss model)
	LossFrac     float64 // fractional energy loss eps (fractional-loss model)
	CloudTau     float64 // C/tau evaporation parameter (cloudy-ISM model)
	LossStart    float64 // fractional-loss start time t_lk
	HotEnd       float64 // hot low-density model end time t_tw
	Variant      Variant
	MuISM        float64 // mean particle mass / mH, from the ISM table
	MuEjecta     float64
}

// Transitions are the externally-computed phase-transition times, in years.
type Transitions struct {
	ST    float64 // end of free expansion
	PDS   float64 // onset of the pressure-driven snowplow
	MCS   float64 // onset of the momentum-conserving snowplow
	Merge float64 // shock velocity reaches the ambient signal speed
	Core  float64 // interior cooling time t_c (hot low-density gate)
	Rev   float64 // reverse shock lifetime
}

// Outputs are the derived values at the requested age plus the transition
// table. Radii in pc, velocities in km/s, temperatures in K.
type Outputs struct {
	ShockRadius   float64
	ShockVelocity float64
	ShockTemp     float64
	RevRadius     float64
	RevVelocity   float64
	RevTemp       float64
	Phase         string
	Trans         Transitions
}

// Model evaluates the remnant evolution. It is stateless; every call works
// from the Inputs snapshot alone.
type Model struct{}

func New() *Model { return &Model{} }

func (in Inputs) mu() float64 {
	if in.MuISM > 0 {
		return in.MuISM
	}
	return 1.4
}

// ejecta velocity, cm/s
func (in Inputs) vEjecta() float64 {
	return math.Sqrt(2 * in.Energy * 1e51 / (in.EjectaMass * msun))
}

// Transitions computes every phase-transition time from the inputs. The
// rule engine consumes Core and PDS to gate the hot low-density variant.
func (m *Model) Transitions(in Inputs) Transitions {
	var tr Transitions

	rho0 := in.mu() * mH * in.Density
	mass := in.EjectaMass * msun
	e := in.Energy * 1e51
	vej := in.vEjecta()

	if in.AmbientIndex == 0 {
		// Truelove & McKee characteristic scales.
		tch := math.Pow(e, -0.5) * math.Pow(mass, 5.0/6.0) * math.Pow(rho0, -1.0/3.0)
		tr.ST = 0.48 * tch / yr
		tr.Rev = 2.5 * tr.ST

		// Cioffi et al. snowplow onsets.
		tr.PDS = 1.33e4 * math.Pow(in.Energy, 3.0/14.0) /
			(math.Pow(in.Cooling, 5.0/14.0) * math.Pow(in.Density, 4.0/7.0))
		vej9 := vej / 1e9
		mcs := 61 * math.Pow(vej9, 3) /
			(math.Pow(in.Cooling, 9.0/14.0) * math.Pow(in.Density, 3.0/7.0) * math.Pow(in.Energy, 3.0/14.0))
		cap := 476 / math.Pow(in.Cooling, 9.0/14.0)
		if mcs > cap {
			mcs = cap
		}
		tr.MCS = mcs * tr.PDS
		if tr.MCS < tr.PDS {
			tr.MCS = tr.PDS
		}
	} else {
		// Wind-blown ambient medium: rho = q / r^2 with q = Mdot / (4 pi v_w).
		q := in.WindLoss * msun / yr / (4 * math.Pi * in.WindSpeed * kmps)
		rSweep := mass / (4 * math.Pi * q)
		tr.ST = rSweep / vej / yr
		tr.Rev = 2.5 * tr.ST
		// Snowplow phases are not modeled for the wind case; the variant set
		// is contracted there anyway.
		tr.PDS = math.Inf(1)
		tr.MCS = math.Inf(1)
	}

	tr.Core = 1.0e5 * math.Sqrt(in.Energy) / in.Density
	tr.Merge = m.mergeTime(in, tr)
	return tr
}

// mergeTime scans the late-time velocity curve for the moment the shock
// slows to twice the ambient signal speed.
func (m *Model) mergeTime(in Inputs, tr Transitions) float64 {
	cs := 0.091 * math.Sqrt(in.ISMTemp) // ~sound speed, km/s
	vEnv := 2 * math.Max(cs, in.Turbulence)
	if vEnv <= 0 {
		return math.Inf(1)
	}
	t := tr.ST
	for i := 0; i < 2000; i++ {
		_, v := m.evaluate(in, tr, t)
		if v <= vEnv {
			return t
		}
		t *= 1.01
		if t > 1e10 {
			break
		}
	}
	return math.Inf(1)
}

// evaluate returns shock radius (pc) and velocity (km/s) at t years.
func (m *Model) evaluate(in Inputs, tr Transitions, t float64) (float64, float64) {
	if t <= 0 {
		return 0, in.vEjecta() / kmps
	}
	vej := in.vEjecta()

	if in.AmbientIndex != 0 {
		// Wind case: ballistic, then R ~ t^(2/3).
		if t < tr.ST {
			return vej * t * yr / pc, vej / kmps
		}
		rst := vej * tr.ST * yr
		r := rst * math.Pow(t/tr.ST, 2.0/3.0)
		v := (2.0 / 3.0) * r / (t * yr)
		return r / pc, v / kmps
	}

	if t < tr.ST {
		return vej * t * yr / pc, vej / kmps
	}

	rst := vej * tr.ST * yr
	sedov := func(t float64) (float64, float64) {
		r := rst * math.Pow(t/tr.ST, 0.4)
		return r, 0.4 * r / (t * yr)
	}

	switch in.Variant {
	case HotLowDensity:
		// No radiative phase before the model end time: Sedov throughout.
		r, v := sedov(t)
		return r / pc, v / kmps
	case FractionalLoss:
		start := math.Max(in.LossStart, tr.ST)
		if t < start {
			r, v := sedov(t)
			return r / pc, v / kmps
		}
		// Shock decelerates faster as the loss fraction grows; eps -> 0
		// recovers Sedov, eps -> 1 approaches momentum conservation.
		alpha := 2.0 / (5.0 + 2.0*in.LossFrac)
		r0, _ := sedov(start)
		r := r0 * math.Pow(t/start, alpha)
		return r / pc, alpha * r / (t * yr) / kmps
	case CloudyISM:
		// Cloud evaporation raises the effective interior density; the
		// similarity solution shrinks the radius by (1 + C/tau)^(-1/5).
		r, v := sedov(t)
		scale := math.Pow(1+in.CloudTau, -0.2)
		return r * scale / pc, v * scale / kmps
	}

	if t < tr.PDS {
		r, v := sedov(t)
		return r / pc, v / kmps
	}
	rpds := rst * math.Pow(tr.PDS/tr.ST, 0.4)
	if t < tr.MCS {
		r := rpds * math.Pow(t/tr.PDS, 0.3)
		return r / pc, 0.3 * r / (t * yr) / kmps
	}
	rmcs := rpds * math.Pow(tr.MCS/tr.PDS, 0.3)
	r := rmcs * math.Pow(t/tr.MCS, 0.25)
	return r / pc, 0.25 * r / (t * yr) / kmps
}

// phase names the evolutionary phase at t years.
func (m *Model) phase(in Inputs, tr Transitions, t float64) string {
	switch {
	case t < tr.ST:
		return "Free expansion"
	case in.Variant == FractionalLoss && t >= math.Max(in.LossStart, tr.ST):
		return "Fractional energy loss"
	case in.Variant == HotLowDensity:
		return "Sedov-Taylor"
	case t < tr.PDS:
		return "Sedov-Taylor"
	case t < tr.MCS:
		return "Pressure-driven snowplow"
	default:
		return "Momentum-conserving snowplow"
	}
}

func (m *Model) validate(in Inputs, tr Transitions) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"t", in.Age},
		{"e_51", in.Energy},
		{"temp_ism", in.ISMTemp},
		{"m_ej", in.EjectaMass},
		{"n_0", in.Density},
		{"zeta_m", in.Cooling},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return &InputError{Param: p.name, Value: p.value, Wrapped: ErrParameterBounds}
		}
	}
	if in.AmbientIndex != 0 && (in.WindLoss <= 0 || in.WindSpeed <= 0) {
		return &InputError{Param: "v_w", Value: in.WindSpeed, Wrapped: ErrParameterBounds}
	}
	if in.Age > tr.Merge {
		return &InputError{Param: "t", Value: in.Age, Wrapped: ErrMerged}
	}
	if in.Variant == FractionalLoss {
		limit := math.Min(tr.Merge, tr.MCS)
		if in.LossStart < tr.ST || in.LossStart > limit {
			return &InputError{Param: "t_lk", Value: in.LossStart, Wrapped: ErrLossStart}
		}
	}
	if in.Variant == HotLowDensity && in.Age > in.HotEnd {
		return &InputError{Param: "t", Value: in.Age, Wrapped: ErrMerged}
	}
	return nil
}

// Recompute derives all outputs from the input snapshot. A physically
// invalid combination returns a domain error; the caller keeps its previous
// outputs on screen.
func (m *Model) Recompute(in Inputs) (*Outputs, error) {
	tr := m.Transitions(in)
	if err := m.validate(in, tr); err != nil {
		return nil, err
	}

	r, v := m.evaluate(in, tr, in.Age)
	out := &Outputs{
		ShockRadius:   r,
		ShockVelocity: v,
		Phase:         m.phase(in, tr, in.Age),
		Trans:         tr,
	}

	// Reverse shock: trails the blast wave until it reaches the center.
	if in.Age < tr.Rev {
		frac := 1 - in.Age/tr.Rev
		out.RevRadius = 0.7 * r * frac
		out.RevVelocity = 0.7 * v
	}

	ratio := in.TempRatio
	if !(ratio > 0) || ratio > 1 {
		ratio = 1
	}
	out.ShockTemp = shockTemp(v, in.mu()) * ratio
	if out.RevVelocity > 0 {
		muEj := in.MuEjecta
		if muEj <= 0 {
			muEj = in.mu()
		}
		out.RevTemp = shockTemp(out.RevVelocity, muEj) * ratio
	}
	return out, nil
}

// Curve samples the radius and velocity curves over [tmin, tmax] for the
// render collaborator. Pure: replotting a new window needs no recompute.
func (m *Model) Curve(in Inputs, tmin, tmax float64, n int) (times, radius, velocity []float64) {
	if n < 2 || tmax <= tmin {
		return nil, nil, nil
	}
	tr := m.Transitions(in)
	times = make([]float64, n)
	radius = make([]float64, n)
	velocity = make([]float64, n)
	dt := (tmax - tmin) / float64(n-1)
	for i := 0; i < n; i++ {
		t := tmin + float64(i)*dt
		r, v := m.evaluate(in, tr, t)
		times[i] = t
		radius[i] = r
		velocity[i] = v
	}
	return times, radius, velocity
}

// shockTemp is the immediate post-shock electron temperature for a shock
// velocity in km/s.
func shockTemp(v float64, mu float64) float64 {
	vc := v * kmps
	return 3.0 / 16.0 * mu * mH * vc * vc / kB
}

// atomic masses for the abundance-weighted mean particle mass
var atomicMass = map[string]float64{
	"H": 1.008, "He": 4.003, "C": 12.011, "N": 14.007, "O": 15.999,
	"Ne": 20.180, "Mg": 24.305, "Si": 28.086, "S": 32.06, "Fe": 55.845,
}

// MeanMass converts a log-abundance table (log(X/H)+12) into the mean
// particle mass in units of the hydrogen mass.
func MeanMass(ab map[string]float64) float64 {
	var num, den float64
	for el, logAb := range ab {
		a, ok := atomicMass[el]
		if !ok {
			continue
		}
		x := math.Pow(10, logAb-12)
		num += x * a
		den += x
	}
	if den == 0 {
		return 1.4
	}
	return num / den
}

// FormatTime renders a transition time for the output panel; merged and
// unmodeled transitions show as dashes.
func FormatTime(t float64) string {
	if math.IsInf(t, 1) || math.IsNaN(t) {
		return "--"
	}
	if t >= 1e5 {
		return fmt.Sprintf("%.3g yr", t)
	}
	return fmt.Sprintf("%.0f yr", t)
}

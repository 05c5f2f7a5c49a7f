// Package axis manages the plotted-time window: named range presets, the
// custom min/max spin editors, and their dynamic power-of-ten increments.
package axis

import "math"

// Mode names the plotted-time window presets. Editing either bound by hand
// forces ModeCustom.
type Mode int

const (
	ModeCurrent Mode = iota
	ModeReverseShock
	ModeEDST
	ModePDS
	ModeMCS
	ModeCustom
)

var modeNames = map[Mode]string{
	ModeCurrent:      "Current",
	ModeReverseShock: "Reverse Shock Lifetime",
	ModeEDST:         "ED-ST",
	ModePDS:          "PDS",
	ModeMCS:          "MCS",
	ModeCustom:       "Custom",
}

func (m Mode) String() string { return modeNames[m] }

// Modes lists the selectable presets in display order, Custom last.
func Modes() []Mode {
	return []Mode{ModeCurrent, ModeReverseShock, ModeEDST, ModePDS, ModeMCS, ModeCustom}
}

// Bound selects which spin editor an action targets.
type Bound int

const (
	BoundMin Bound = iota
	BoundMax
)

// minStep is the increment floor: spin steps never drop below ten years.
const minStep = 10

// StepFor returns the spin increment for the current value: the largest
// power of ten at or below v, floored at minStep. Non-positive values (log
// undefined) fall back to the floor.
func StepFor(v float64) float64 {
	if v <= 0 {
		return minStep
	}
	step := math.Pow(10, math.Floor(math.Log10(v)))
	if step < minStep {
		step = minStep
	}
	return step
}

// Range is a bounded plotted-axis window. Zero is the lower limit for both
// bounds; Limit caps the maximum.
type Range struct {
	Min   float64
	Max   float64
	Mode  Mode
	Inc   float64
	Limit float64

	replot func()
}

// NewRange starts in ModeCurrent with the increment primed for the max
// bound. replot is invoked after every accepted edit; axis changes are
// display-only and never trigger a model recompute.
func NewRange(min, max, limit float64, replot func()) *Range {
	return &Range{Min: min, Max: max, Mode: ModeCurrent, Inc: StepFor(max), Limit: limit, replot: replot}
}

func (r *Range) bound(b Bound) float64 {
	if b == BoundMin {
		return r.Min
	}
	return r.Max
}

func (r *Range) setBound(b Bound, v float64) {
	if b == BoundMin {
		r.Min = v
	} else {
		r.Max = v
	}
}

// Bump applies one spin action (dir = +1 increment, -1 decrement) to the
// given bound and returns the committed value. The step is recomputed from
// the current value; when the value sits exactly on its own step (above the
// floor) a decrement first divides the step by ten so that crossing a
// power-of-ten boundary downward lands on finer granularity. Off-multiple
// results are snapped toward the old value unless that would prevent
// reaching the upper limit exactly. Edits that would fall below zero or
// collide with the paired bound are rejected with no state change.
func (r *Range) Bump(b Bound, dir int) (float64, bool) {
	old := r.bound(b)
	step := StepFor(old)
	if old == step && step != minStep && dir == -1 {
		step /= 10
	}

	raw := old + float64(dir)*step
	if math.Mod(raw, step) != 0 && !(math.Round(old) == math.Round(r.Limit) && dir == 1) {
		if dir == 1 {
			raw = math.Floor(raw/step) * step
		} else {
			raw = math.Ceil(raw/step) * step
		}
	}
	if raw > r.Limit {
		raw = r.Limit
	}
	val, ok := r.commit(b, raw)
	if ok {
		r.Inc = step
	}
	return val, ok
}

// SetBound applies a typed-in value to a bound, subject to the same
// collision rules as Bump, and refreshes the increment for the new value.
func (r *Range) SetBound(b Bound, v float64) (float64, bool) {
	val, ok := r.commit(b, v)
	if ok {
		r.Inc = StepFor(val)
	}
	return val, ok
}

func (r *Range) commit(b Bound, v float64) (float64, bool) {
	if v < 0 {
		return r.bound(b), false
	}
	if b == BoundMin && v >= r.Max {
		return r.Min, false
	}
	if b == BoundMax && v <= r.Min {
		return r.Max, false
	}
	r.setBound(b, v)
	if r.Mode != ModeCustom {
		r.Mode = ModeCustom
	}
	if r.replot != nil {
		r.replot()
	}
	return v, true
}

// SetPreset switches to a named window without marking the range custom.
// The window bounds come from the caller (the render collaborator derives
// them from the model's transition times).
func (r *Range) SetPreset(m Mode, min, max float64) {
	if m == ModeCustom {
		r.Mode = ModeCustom
		return
	}
	r.Mode = m
	r.Min = min
	if max > r.Limit {
		max = r.Limit
	}
	r.Max = max
	r.Inc = StepFor(r.Max)
	if r.replot != nil {
		r.replot()
	}
}

package params

import "math"

// NA is the display sentinel for inputs that are not applicable under the
// current model selection. It is never a committed value.
var NA = math.NaN()

// Snapshot is a read-only copy of registry values taken at predicate
// evaluation time. Predicates close over a snapshot, never over the live
// registry, so a multi-parameter edit cannot observe half-applied state.
type Snapshot map[string]float64

func (s Snapshot) Get(id string) float64 { return s[id] }

// Predicate reports whether a proposed value is acceptable. The snapshot
// carries the rest of the registry for cross-parameter checks.
type Predicate func(value float64, snap Snapshot) bool

// GreaterThanZero is the most common validity predicate in the input panel.
func GreaterThanZero(v float64, _ Snapshot) bool { return v > 0 }

type Param struct {
	ID      string
	Default float64
	Valid   Predicate
	Enabled bool
	Visible bool
	Step    float64

	value float64
	prev  float64
}

// Value returns the current committed value.
func (p *Param) Value() float64 { return p.value }

// Registry owns every named input of the session. It is an explicit
// structure handed to rules and controllers, not ambient state, so tests can
// build isolated registries.
type Registry struct {
	byID  map[string]*Param
	order []string
}

func New() *Registry {
	return &Registry{byID: make(map[string]*Param)}
}

// Add registers a parameter. The current value starts at the default and the
// revert slot is primed with it. Parameters are never removed for the
// lifetime of a session.
func (r *Registry) Add(p Param) *Param {
	p.value = p.Default
	p.prev = p.Default
	stored := &p
	r.byID[p.ID] = stored
	r.order = append(r.order, p.ID)
	return stored
}

func (r *Registry) Param(id string) *Param { return r.byID[id] }

// Get returns the current value, or NaN for an unknown identifier.
func (r *Registry) Get(id string) float64 {
	p, ok := r.byID[id]
	if !ok {
		return NA
	}
	return p.value
}

// Set commits a value if the parameter's predicate accepts it against a
// snapshot of the registry. A rejected value is discarded silently and the
// prior value is retained; propagation to dependent rules is the caller's
// responsibility.
func (r *Registry) Set(id string, v float64) bool {
	p, ok := r.byID[id]
	if !ok {
		return false
	}
	if p.Valid != nil && !p.Valid(v, r.Values()) {
		return false
	}
	p.value = v
	p.prev = v
	return true
}

// Force writes a value without consulting the predicate. Used by rule
// transitions for domain-restriction fallbacks and N/A sentinels; it does
// not touch the revert slot.
func (r *Registry) Force(id string, v float64) {
	if p, ok := r.byID[id]; ok {
		p.value = v
	}
}

func (r *Registry) SetEnabled(id string, enabled bool) {
	if p, ok := r.byID[id]; ok {
		p.Enabled = enabled
	}
}

func (r *Registry) SetVisible(id string, visible bool) {
	if p, ok := r.byID[id]; ok {
		p.Visible = visible
	}
}

func (r *Registry) RevertToDefault(id string) {
	if p, ok := r.byID[id]; ok {
		p.value = p.Default
		p.prev = p.Default
	}
}

// RevertToLast restores the last value that passed validation. Used when a
// hidden input is revealed again: reverted, not defaulted.
func (r *Registry) RevertToLast(id string) {
	if p, ok := r.byID[id]; ok {
		p.value = p.prev
	}
}

// Values snapshots every parameter, including disabled ones. Predicates
// evaluate against this.
func (r *Registry) Values() Snapshot {
	snap := make(Snapshot, len(r.byID))
	for id, p := range r.byID {
		snap[id] = p.value
	}
	return snap
}

// EnabledValues snapshots only enabled parameters; disabled parameters are
// excluded from recompute input.
func (r *Registry) EnabledValues() Snapshot {
	snap := make(Snapshot, len(r.byID))
	for id, p := range r.byID {
		if p.Enabled {
			snap[id] = p.value
		}
	}
	return snap
}

// IDs lists parameters in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

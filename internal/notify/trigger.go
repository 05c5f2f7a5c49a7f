// Package notify coalesces change notifications so that one logical user
// action produces at most one external recompute request.
package notify

// Trigger is the single notification point between the input controllers and
// the model/render collaborators. All calls happen on the event thread.
type Trigger struct {
	fn      func()
	depth   int
	pending bool
}

func New(fn func()) *Trigger {
	return &Trigger{fn: fn}
}

// Changed requests a recompute. With update=false the request is dropped
// entirely; callers pass false during bulk initialization so the initial
// rule cascade settles without redundant recomputation.
func (t *Trigger) Changed(update bool) {
	if !update || t.fn == nil {
		return
	}
	if t.depth > 0 {
		t.pending = true
		return
	}
	t.fn()
}

// Batch runs fn as one logical action: any number of Changed(true) calls
// inside collapse into a single notification fired after fn returns. Nested
// batches extend the outer one; the notification fires once, at the top.
func (t *Trigger) Batch(fn func()) {
	t.depth++
	fn()
	t.depth--
	if t.depth == 0 && t.pending {
		t.pending = false
		t.fn()
	}
}

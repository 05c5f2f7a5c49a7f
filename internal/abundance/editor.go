package abundance

// Session owns the two committed tables, the per-kind default presets, and
// the single-instance arbitration for open editors. onCommit is the link to
// the recompute trigger.
type Session struct {
	tables   map[Kind]*Table
	defaults map[Kind]string
	open     map[Kind]*Editor
	onCommit func(Kind)
}

func NewSession(onCommit func(Kind)) *Session {
	defaults := map[Kind]string{ISM: "LMC", Ejecta: "Type Ia"}
	return &Session{
		tables: map[Kind]*Table{
			ISM:    NewTable(ISM, defaults[ISM]),
			Ejecta: NewTable(Ejecta, defaults[Ejecta]),
		},
		defaults: defaults,
		open:     make(map[Kind]*Editor),
		onCommit: onCommit,
	}
}

// Table returns the committed table for a kind.
func (s *Session) Table(k Kind) *Table { return s.tables[k] }

// DefaultPreset returns the session default preset for a kind; commit
// updates it for the remainder of the session.
func (s *Session) DefaultPreset(k Kind) string { return s.defaults[k] }

// Open creates an editor view over the table, or, if one is already open for
// this kind, refocuses it instead of creating a second. The returned flag is
// true when an existing view was refocused.
func (s *Session) Open(k Kind) (*Editor, bool) {
	if ed, ok := s.open[k]; ok {
		ed.focused = true
		return ed, true
	}
	t := s.tables[k]
	ed := &Editor{
		session: s,
		kind:    k,
		working: make(map[string]float64, len(t.Values)),
		preset:  t.Preset,
		custom:  t.CustomMode,
		focused: true,
	}
	for el, v := range t.Values {
		ed.working[el] = v
	}
	s.open[k] = ed
	return ed, false
}

// OpenCount reports how many editor views are live.
func (s *Session) OpenCount() int { return len(s.open) }

// Editor is a modal working copy over one table. The backing table is not
// mutated until Commit; Cancel discards the copy. Either path releases the
// single-instance slot.
type Editor struct {
	session *Session
	kind    Kind
	working map[string]float64
	preset  string
	custom  bool
	focused bool
	closed  bool
}

func (e *Editor) Kind() Kind    { return e.kind }
func (e *Editor) Focused() bool { return e.focused }
func (e *Editor) Closed() bool  { return e.closed }

// Value reads an element from the working copy.
func (e *Editor) Value(el string) float64 { return e.working[el] }

// Mode reports the working preset, or Custom once any value was edited.
func (e *Editor) Mode() string {
	if e.custom {
		return Custom
	}
	return e.preset
}

// SetElement edits one element in the working copy. Values must be positive
// and below 100 (log scale); anything else is rejected with the prior value
// retained. Any accepted edit marks the working copy Custom.
func (e *Editor) SetElement(el string, v float64) bool {
	if e.closed {
		return false
	}
	if _, ok := e.working[el]; !ok {
		return false
	}
	if !(v > 0 && v < 100) {
		return false
	}
	e.working[el] = v
	e.custom = true
	return true
}

// SelectPreset overwrites every element's working value with the preset's
// defined values and marks the copy as matching that preset.
func (e *Editor) SelectPreset(name string) {
	if e.closed {
		return
	}
	vals := PresetValues(name)
	if vals == nil {
		return
	}
	for el, v := range vals {
		e.working[el] = v
	}
	e.preset = name
	e.custom = false
}

// Commit writes the working copy back to the table, records the selected
// preset as the session default for this kind, closes the view, and fires
// the session's commit hook. Closing the editor window by any means commits;
// only an explicit Cancel discards.
func (e *Editor) Commit() {
	if e.closed {
		return
	}
	t := e.session.tables[e.kind]
	for el, v := range e.working {
		t.Values[el] = v
	}
	t.Preset = e.preset
	t.CustomMode = e.custom
	e.session.defaults[e.kind] = e.preset
	e.release()
	if e.session.onCommit != nil {
		e.session.onCommit(e.kind)
	}
}

// Cancel discards the working copy and closes the view. The backing table is
// untouched and no recompute fires.
func (e *Editor) Cancel() {
	if e.closed {
		return
	}
	e.release()
}

func (e *Editor) release() {
	e.closed = true
	e.focused = false
	delete(e.session.open, e.kind)
}

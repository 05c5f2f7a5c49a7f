// Package abundance holds the per-element composition tables and the modal
// editor over them. One ISM table and one ejecta table exist per session;
// values are log(X/H)+12.
package abundance

// Kind distinguishes the two tables of a session.
type Kind int

const (
	ISM Kind = iota
	Ejecta
)

func (k Kind) String() string {
	if k == ISM {
		return "ISM"
	}
	return "Ejecta"
}

// Custom marks a table whose values diverge from every named preset.
const Custom = "Custom"

// ElementOrder is the display order of editable elements. Hydrogen is the
// reference (fixed at 12) and is not editable.
var ElementOrder = []string{"He", "C", "N", "O", "Ne", "Mg", "Si", "S", "Fe"}

var ElementNames = map[string]string{
	"H": "Hydrogen", "He": "Helium", "C": "Carbon", "N": "Nitrogen",
	"O": "Oxygen", "Ne": "Neon", "Mg": "Magnesium", "Si": "Silicon",
	"S": "Sulphur", "Fe": "Iron",
}

var presets = map[string]map[string]float64{
	"Solar": {
		"H": 12, "He": 10.93, "C": 8.52, "N": 7.92, "O": 8.83,
		"Ne": 8.08, "Mg": 7.58, "Si": 7.55, "S": 7.33, "Fe": 7.50,
	},
	"LMC": {
		"H": 12, "He": 10.94, "C": 8.04, "N": 7.14, "O": 8.35,
		"Ne": 7.61, "Mg": 7.47, "Si": 7.81, "S": 6.70, "Fe": 7.23,
	},
	"CC": {
		"H": 12, "He": 11.22, "C": 9.25, "N": 8.62, "O": 9.69,
		"Ne": 8.92, "Mg": 8.30, "Si": 8.79, "S": 8.54, "Fe": 8.55,
	},
	"Type Ia": {
		"H": 12, "He": 11.40, "C": 12.60, "N": 7.50, "O": 12.91,
		"Ne": 11.04, "Mg": 11.55, "Si": 12.75, "S": 12.43, "Fe": 13.12,
	},
}

// PresetsFor lists the two preset sources selectable for a table kind.
func PresetsFor(k Kind) []string {
	if k == ISM {
		return []string{"LMC", "Solar"}
	}
	return []string{"CC", "Type Ia"}
}

// PresetValues returns the defined values of a named preset, or nil for an
// unknown name (including Custom, which has no defined values).
func PresetValues(name string) map[string]float64 {
	vals, ok := presets[name]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(vals))
	for el, v := range vals {
		out[el] = v
	}
	return out
}

// Table is a committed per-element composition. Preset names the source the
// values came from; CustomMode is set whenever any value diverges from it.
type Table struct {
	Kind       Kind
	Values     map[string]float64
	Preset     string
	CustomMode bool
}

// NewTable builds a table initialized from a named preset.
func NewTable(k Kind, preset string) *Table {
	t := &Table{Kind: k, Values: make(map[string]float64)}
	t.ApplyPreset(preset)
	return t
}

// ApplyPreset overwrites every element value with the preset's defined
// values and clears the custom flag.
func (t *Table) ApplyPreset(name string) {
	vals := PresetValues(name)
	if vals == nil {
		return
	}
	for el, v := range vals {
		t.Values[el] = v
	}
	t.Preset = name
	t.CustomMode = false
}

// Mode reports the preset name, or Custom when any value diverges from it.
func (t *Table) Mode() string {
	if t.CustomMode {
		return Custom
	}
	return t.Preset
}

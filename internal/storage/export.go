package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// WriteCSV streams a curve as time/radius/velocity rows.
func WriteCSV(w io.Writer, curve *Curve) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time_yr", "radius_pc", "velocity_kmps"}); err != nil {
		return err
	}
	for i := range curve.Times {
		row := []string{
			strconv.FormatFloat(curve.Times[i], 'g', 8, 64),
			strconv.FormatFloat(curve.Radius[i], 'g', 8, 64),
			strconv.FormatFloat(curve.Velocity[i], 'g', 8, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON streams a session's metadata and curve as one document.
func WriteJSON(w io.Writer, meta SessionMetadata, curve *Curve) error {
	doc := struct {
		SessionMetadata
		Curve *Curve `json:"curve"`
	}{meta, curve}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

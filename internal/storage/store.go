package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Curve is one sampled evolution history over the plotted time window.
type Curve struct {
	Times    []float64 `json:"times"`
	Radius   []float64 `json:"radius"`
	Velocity []float64 `json:"velocity"`
}

// SessionMetadata describes one saved model evaluation.
type SessionMetadata struct {
	ID           string    `json:"id"`
	Model        string    `json:"model"`
	Timestamp    time.Time `json:"timestamp"`
	Age          float64   `json:"age"`
	AmbientIndex float64   `json:"ambient_index"`
	EjectaIndex  float64   `json:"ejecta_index"`
	Phase        string    `json:"phase"`
	ShockRadius  float64   `json:"shock_radius"`
	ShockVel     float64   `json:"shock_velocity"`
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save persists a session's metadata and curve under a generated id.
func (s *Store) Save(meta SessionMetadata, curve *Curve) (string, error) {
	id := fmt.Sprintf("%s_%d", meta.Model, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta.ID = id
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	curveFile, err := os.Create(filepath.Join(dir, "curve.csv"))
	if err != nil {
		return "", err
	}
	defer curveFile.Close()

	return id, WriteCSV(curveFile, curve)
}

func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta SessionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		sessions = append(sessions, meta)
	}
	return sessions, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadCurve(id string) (*Curve, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "curve.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &Curve{}, nil
	}

	curve := &Curve{
		Times:    make([]float64, 0, len(records)-1),
		Radius:   make([]float64, 0, len(records)-1),
		Velocity: make([]float64, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		r0, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		v0, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		curve.Times = append(curve.Times, t)
		curve.Radius = append(curve.Radius, r0)
		curve.Velocity = append(curve.Velocity, v0)
	}
	return curve, nil
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/gear"
	"github.com/san-kum/gearsim/internal/motion"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Params    motion.Params      `json:"params"`
	Gears     []string           `json:"gears"`
	Teeth     []int              `json:"teeth"`
	Duration  float64            `json:"duration_ms"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and the frames under a new run directory and returns its id.
func (s *Store) Save(meta RunMetadata, frames []assembly.Frame) (string, error) {
	name := meta.Scenario
	if name == "" {
		name = "run"
	}
	runID, runDir, err := s.allocate(name)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Frames = len(frames)
	if len(frames) > 0 {
		meta.Duration = frames[len(frames)-1].Time - frames[0].Time
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"time", "speed", "angle", "hovered"}
	for _, id := range meta.Gears {
		header = append(header, id)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 3, 64),
			strconv.FormatFloat(f.Speed, 'f', 6, 64),
			strconv.FormatFloat(f.Angle, 'f', 6, 64),
			strconv.Itoa(int(f.Hovered)),
		}
		for _, a := range f.Angles {
			row = append(row, strconv.FormatFloat(a, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

// allocate creates a fresh run directory, suffixing the id when a run with
// the same name was saved within the same second.
func (s *Store) allocate(name string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]assembly.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []assembly.Frame{}, nil
	}

	frames := make([]assembly.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 4 {
			return nil, fmt.Errorf("trace row %d: expected at least 4 columns, got %d", i+1, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("trace row %d column %d: %w", i+1, j+1, err)
			}
			vals[j] = v
		}
		frames = append(frames, assembly.Frame{
			Time:    vals[0],
			Speed:   vals[1],
			Angle:   vals[2],
			Hovered: gear.Handle(vals[3]),
			Angles:  vals[4:],
		})
	}

	return frames, nil
}

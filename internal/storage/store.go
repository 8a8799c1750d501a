package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"step", "time", "position", "velocity", "action", "reward"}

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
	ID         string             `json:"id"`
	Policy     string             `json:"policy"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	TimeStep   float64            `json:"time_step"`
	MaxSteps   int                `json:"max_steps"`
	Gravity    float64            `json:"gravity"`
	Steps      int                `json:"steps"`
	Return     float64            `json:"return"`
	Bounces    int                `json:"bounces"`
	Terminated bool               `json:"terminated"`
	Truncated  bool               `json:"truncated"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewMetadata fills the episode outcome fields from result.
func NewMetadata(policy string, cfg dynamo.Config, result *dynamo.Result) RunMetadata {
	return RunMetadata{
		Policy:     policy,
		Seed:       result.Seed,
		TimeStep:   cfg.TimeStep,
		MaxSteps:   cfg.MaxSteps,
		Gravity:    cfg.Gravity,
		Steps:      result.StepsTaken,
		Return:     result.Return,
		Bounces:    result.Bounces,
		Terminated: result.Terminated,
		Truncated:  result.Truncated,
		Metrics:    result.Metrics,
	}
}

// Save writes a run directory and returns its ID. meta.ID and meta.Timestamp
// are assigned here.
func (s *Store) Save(meta RunMetadata, samples []env.Sample) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d_%d", meta.Policy, meta.Seed, now.UnixNano())
	meta.Timestamp = now

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns stored runs, newest first. Unreadable run directories are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: bad metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]env.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

func WriteCSV(w io.Writer, samples []env.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Step),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Position, 'g', -1, 64),
			strconv.FormatFloat(smp.Velocity, 'g', -1, 64),
			strconv.Itoa(int(smp.Action)),
			strconv.FormatFloat(smp.Reward, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]env.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: bad trajectory: %w", err)
	}
	if len(records) < 2 {
		return []env.Sample{}, nil
	}

	samples := make([]env.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		smp, err := parseSample(rec)
		if err != nil {
			return nil, fmt.Errorf("storage: trajectory row %d: %w", i+1, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (env.Sample, error) {
	var smp env.Sample
	var err error

	if smp.Step, err = strconv.Atoi(rec[0]); err != nil {
		return smp, err
	}
	if smp.Time, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return smp, err
	}
	if smp.Position, err = strconv.ParseFloat(rec[2], 64); err != nil {
		return smp, err
	}
	if smp.Velocity, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return smp, err
	}
	action, err := strconv.Atoi(rec[4])
	if err != nil {
		return smp, err
	}
	smp.Action = dynamo.Action(action)
	if !smp.Action.Valid() {
		return smp, fmt.Errorf("%w: %d", dynamo.ErrInvalidAction, action)
	}
	if smp.Reward, err = strconv.ParseFloat(rec[5], 64); err != nil {
		return smp, err
	}
	return smp, nil
}

type ExportData struct {
	Run        RunMetadata  `json:"run"`
	Trajectory []env.Sample `json:"trajectory"`
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []env.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Trajectory: samples})
}

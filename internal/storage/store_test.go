package storage

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
)

func testSamples() []env.Sample {
	return []env.Sample{
		{Step: 1, Time: 0.3, Position: 7.5, Velocity: -2.943, Action: dynamo.ActionNone, Reward: 0},
		{Step: 2, Time: 0.6, Position: 5.7, Velocity: -8.8, Action: dynamo.ActionHit, Reward: -1},
		{Step: 3, Time: 0.9, Position: -0.05, Velocity: 1.2, Action: dynamo.ActionNone, Reward: -1000},
	}
}

func testMetadata() RunMetadata {
	cfg := dynamo.DefaultConfig()
	result := &dynamo.Result{
		Seed:       42,
		StepsTaken: 3,
		Return:     -1001,
		Bounces:    1,
		Terminated: true,
		Metrics:    map[string]float64{"energy": 1.5},
	}
	return NewMetadata("none", cfg, result)
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMetadata(), testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Policy != "none" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if !meta.Terminated || meta.Return != -1001 || meta.TimeStep != 0.3 {
		t.Errorf("outcome not stored: %+v", meta)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}

	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	want := testSamples()
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, samples[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty store: %v, %v", runs, err)
	}

	first, err := st.Save(testMetadata(), testSamples())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(testMetadata(), nil)
	if err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("runs not newest first: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("got %v, %v", runs, err)
	}
}

func TestReadCSVRejectsBadAction(t *testing.T) {
	in := "step,time,position,velocity,action,reward\n1,0.3,7,-3,2,0\n"
	if _, err := ReadCSV(strings.NewReader(in)); err == nil {
		t.Error("expected error for action 2")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, testMetadata(), testSamples()); err != nil {
		t.Fatal(err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Run.Seed != 42 || len(out.Trajectory) != 3 {
		t.Errorf("unexpected export %+v", out)
	}
	if out.Trajectory[1].Action != dynamo.ActionHit {
		t.Errorf("action = %v", out.Trajectory[1].Action)
	}
}

func TestIndexTop(t *testing.T) {
	idx, err := OpenIndex(filepath.Join(t.TempDir(), "db", "episodes.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	entries := []RunMetadata{
		{ID: "a", Policy: "none", Seed: 1, Steps: 40, Return: -1000, Terminated: true},
		{ID: "b", Policy: "random", Seed: 2, Steps: 400, Return: -37, Truncated: true},
		{ID: "c", Policy: "random", Seed: 3, Steps: 90, Return: -1012, Terminated: true},
		{ID: "d", Policy: "none", Seed: 4, Steps: 55, Return: -1000, Terminated: true},
	}
	for _, m := range entries {
		if err := idx.Record(m); err != nil {
			t.Fatal(err)
		}
	}

	if err := idx.Record(entries[0]); err == nil {
		t.Error("expected duplicate run id to fail")
	}

	top, err := idx.Top("", 3)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(top))
	for i, e := range top {
		got[i] = e.RunID
	}
	if strings.Join(got, ",") != "b,d,a" {
		t.Errorf("top = %v, want [b d a]", got)
	}
	if !top[0].Truncated || top[0].Terminated {
		t.Errorf("flags not stored: %+v", top[0])
	}

	random, err := idx.Top("random", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(random) != 2 || random[1].RunID != "c" {
		t.Errorf("filtered top = %+v", random)
	}
}

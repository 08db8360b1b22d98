package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/pasture/systems"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:      SnapshotVersion,
		RNGSeed:      42,
		CanvasWidth:  800,
		CanvasHeight: 500,
		Tick:         1000,
		Running:      true,
		Grazers: []GrazerState{
			{ID: 1, X: 150, Y: 290, VX: -1.2, Grazing: true, GrazeTimer: 321, JumpTimer: 88, Facing: -1, GaitFrame: 1},
			{ID: 2, X: 400, Y: 250, VX: 0.9, VY: -3, Jumping: true, Facing: 1},
		},
		Grass: []systems.GrassPatch{{X: 0, Y: 380, Stage: 2, Timer: 120}},
		Stars: []systems.Star{{X: 10, Y: 20, Brightness: 0.8, TwinkleSpeed: 0.02}},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}
	if want := filepath.Join(tmpDir, "snapshot_1000.json"); path != want {
		t.Errorf("Path mismatch: got %s, want %s", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != snapshot.RNGSeed || loaded.Tick != snapshot.Tick || !loaded.Running {
		t.Errorf("header mismatch: got seed=%d tick=%d running=%v", loaded.RNGSeed, loaded.Tick, loaded.Running)
	}
	if len(loaded.Grazers) != 2 {
		t.Fatalf("Grazers count: got %d, want 2", len(loaded.Grazers))
	}
	if loaded.Grazers[0] != snapshot.Grazers[0] {
		t.Errorf("grazer mismatch: got %+v, want %+v", loaded.Grazers[0], snapshot.Grazers[0])
	}
	if len(loaded.Grass) != 1 || loaded.Grass[0].Stage != 2 {
		t.Errorf("grass not restored: %+v", loaded.Grass)
	}
	if len(loaded.Stars) != 1 || loaded.Stars[0].Brightness != 0.8 {
		t.Errorf("stars not restored: %+v", loaded.Stars)
	}
}

func TestLoadSnapshotRejectsOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected error for unknown snapshot version")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mini-vox/internal/world"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vox.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	d := cfg.Dims()
	if d.X != 32 || d.Y != 32 || d.Z != 32 || d.Margin != 2 {
		t.Errorf("default dims = %+v", d)
	}
	if cfg.TerrainOptions().FloodLight {
		t.Error("falloff pass should be off by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
chunk:
  size: [16, 64, 16]
  margin: 4
terrain:
  generator: flat
  flat_height: 12
light:
  flood_fill: true
mesh:
  water_all_faces: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d := cfg.Dims()
	if d.X != 16 || d.Y != 64 || d.Margin != 4 {
		t.Errorf("dims = %+v", d)
	}
	if cfg.Chunk.MaxPerFrame != 8 || cfg.Window.Width != 1280 {
		t.Error("missing keys lost their defaults")
	}
	opts := cfg.TerrainOptions()
	if !opts.FloodLight || !opts.Mesh.WaterAllFaces {
		t.Errorf("options = %+v", opts)
	}
	if g, ok := cfg.Source().(*world.FlatGenerator); !ok || g.Height != 12 {
		t.Errorf("source = %#v", cfg.Source())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Terrain.Generator != "noise" {
		t.Errorf("generator = %q", cfg.Terrain.Generator)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"odd margin":      "chunk:\n  margin: 3\n",
		"short size":      "chunk:\n  size: [8, 8]\n",
		"bad generator":   "terrain:\n  generator: perlin\n",
		"far < near":      "camera:\n  near: 10\n  far: 5\n",
		"render too far":  "terrain:\n  render_distance: 1000\n",
		"render too near": "terrain:\n  render_distance: 8\n",
		"no sun":          "light:\n  sun_direction: [0, 0, 0]\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: err = %v, want ErrInvalid", name, err)
		}
	}
}

func TestTerrainOptionsMatchRuntimeDistance(t *testing.T) {
	defer SetRenderDistance(GetRenderDistance())

	cfg, err := Load(writeConfig(t, "terrain:\n  render_distance: 512\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Apply()
	if got := cfg.TerrainOptions().RenderDistance; int(got) != GetRenderDistance() {
		t.Errorf("terrain distance %v, runtime distance %d", got, GetRenderDistance())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "chunk:\n  sizes: [8, 8, 8]\n"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want a decode error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestRuntimeSettingsClamp(t *testing.T) {
	defer SetRenderDistance(GetRenderDistance())
	defer SetFPSLimit(GetFPSLimit())

	SetRenderDistance(1)
	if got := GetRenderDistance(); got != MinRenderDistance {
		t.Errorf("render distance = %d", got)
	}
	SetRenderDistance(10_000)
	if got := GetRenderDistance(); got != MaxRenderDistance {
		t.Errorf("render distance = %d", got)
	}
	SetFPSLimit(-5)
	if GetFPSLimit() != 0 {
		t.Error("negative fps limit not treated as uncapped")
	}

	cfg := Default()
	cfg.Terrain.RenderDistance = 96
	cfg.Window.FPSLimit = 144
	cfg.Apply()
	if GetRenderDistance() != 96 || GetFPSLimit() != 144 {
		t.Errorf("Apply: distance=%d fps=%d", GetRenderDistance(), GetFPSLimit())
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config)
	}{
		{
			name:       "valid yaml overrides defaults",
			createFile: true,
			content: `logging:
  level: "debug"
  format: "json"
motion:
  max_stable_move_speed: 12
  jump_speed: 14
  gravity: [0, -25, 0]
camera:
  default_distance: 8
world:
  spawn: [2, 1, 2]
  boxes:
    - min: [-5, -1, -5]
      max: [5, 0, 5]
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
				}
				if cfg.Motion.MaxStableMoveSpeed != 12 {
					t.Errorf("Motion.MaxStableMoveSpeed = %v, want 12", cfg.Motion.MaxStableMoveSpeed)
				}
				if cfg.Motion.JumpSpeed != 14 {
					t.Errorf("Motion.JumpSpeed = %v, want 14", cfg.Motion.JumpSpeed)
				}
				if cfg.Motion.Gravity.Y() != -25 {
					t.Errorf("Motion.Gravity.Y = %v, want -25", cfg.Motion.Gravity.Y())
				}
				if cfg.Camera.DefaultDistance != 8 {
					t.Errorf("Camera.DefaultDistance = %v, want 8", cfg.Camera.DefaultDistance)
				}
				if len(cfg.World.Boxes) != 1 {
					t.Fatalf("len(World.Boxes) = %d, want 1", len(cfg.World.Boxes))
				}
				if cfg.World.Spawn != [3]float64{2, 1, 2} {
					t.Errorf("World.Spawn = %v, want [2 1 2]", cfg.World.Spawn)
				}
			},
		},
		{
			name:       "unspecified fields keep defaults",
			createFile: true,
			content: `motion:
  jump_speed: 14
`,
			validate: func(t *testing.T, cfg *Config) {
				want := Default().Motion.MaxStableMoveSpeed
				if cfg.Motion.MaxStableMoveSpeed != want {
					t.Errorf("Motion.MaxStableMoveSpeed = %v, want default %v", cfg.Motion.MaxStableMoveSpeed, want)
				}
				if cfg.Logging.Level != "info" {
					t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
				}
			},
		},
		{
			name:       "out of range values are clamped",
			createFile: true,
			content: `motion:
  max_stable_move_speed: -4
  drag: -1
camera:
  max_pitch_angle: 200
  min_distance: -3
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Motion.MaxStableMoveSpeed != 0 {
					t.Errorf("Motion.MaxStableMoveSpeed = %v, want clamped 0", cfg.Motion.MaxStableMoveSpeed)
				}
				if cfg.Motion.Drag != 0 {
					t.Errorf("Motion.Drag = %v, want clamped 0", cfg.Motion.Drag)
				}
				if cfg.Camera.MaxPitchAngle != 90 {
					t.Errorf("Camera.MaxPitchAngle = %v, want clamped 90", cfg.Camera.MaxPitchAngle)
				}
				if cfg.Camera.MinDistance != 0 {
					t.Errorf("Camera.MinDistance = %v, want clamped 0", cfg.Camera.MinDistance)
				}
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
		},
		{
			name:       "malformed yaml",
			createFile: true,
			content: `motion:
  jump_speed: [14
`,
			wantErr: true,
		},
		{
			name:       "empty file keeps defaults",
			createFile: true,
			content:    "",
			validate: func(t *testing.T, cfg *Config) {
				def := Default()
				if cfg.Motion != def.Motion {
					t.Errorf("Motion = %+v, want defaults", cfg.Motion)
				}
				if len(cfg.World.Boxes) != len(def.World.Boxes) {
					t.Errorf("len(World.Boxes) = %d, want %d", len(cfg.World.Boxes), len(def.World.Boxes))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("write test config: %v", err)
				}
			}

			cfg, err := Load(configPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg == nil {
				t.Fatalf("Load() returned nil config")
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFileIsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

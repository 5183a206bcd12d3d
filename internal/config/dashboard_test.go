package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestEmptyConfigDefaults(t *testing.T) {
	cfg := EmptyDashboardConfig()

	if got := cfg.GetListen(); got != DefaultListen {
		t.Errorf("GetListen() = %q, want %q", got, DefaultListen)
	}
	if got := cfg.GetShutdownTimeout(); got != DefaultShutdownTimeout {
		t.Errorf("GetShutdownTimeout() = %v, want %v", got, DefaultShutdownTimeout)
	}
	if cfg.GetDebug() {
		t.Error("GetDebug() = true, want false")
	}
	if got := cfg.GetBaseDir(); got != "" {
		t.Errorf("GetBaseDir() = %q, want empty", got)
	}
	if got := cfg.GetAssetsHost(); got != DefaultAssetsHost {
		t.Errorf("GetAssetsHost() = %q", got)
	}
	if cfg.GetColorBy() != DefaultColorBy || cfg.GetPointSize() != DefaultPointSize || cfg.GetOpacity() != DefaultOpacity {
		t.Errorf("unexpected control defaults: %s %d %f", cfg.GetColorBy(), cfg.GetPointSize(), cfg.GetOpacity())
	}
}

func TestLoadDashboardConfig(t *testing.T) {
	p := writeConfig(t, "dash.json", `{"listen": ":9999", "shutdown_timeout": "2s", "point_size": 6, "opacity": 0.4, "debug": true}`)

	cfg, err := LoadDashboardConfig(p)
	if err != nil {
		t.Fatalf("LoadDashboardConfig: %v", err)
	}
	if cfg.GetListen() != ":9999" {
		t.Errorf("listen = %q", cfg.GetListen())
	}
	if cfg.GetShutdownTimeout() != 2*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.GetShutdownTimeout())
	}
	if cfg.GetPointSize() != 6 || cfg.GetOpacity() != 0.4 || !cfg.GetDebug() {
		t.Errorf("unexpected values: %+v", cfg)
	}
	// omitted fields keep defaults
	if cfg.GetColorBy() != DefaultColorBy {
		t.Errorf("color_by = %q", cfg.GetColorBy())
	}
}

func TestLoadDashboardConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{name: "wrong extension", file: "dash.yaml", body: `{}`, wantErr: ".json extension"},
		{name: "bad json", file: "dash.json", body: `{`, wantErr: "failed to parse"},
		{name: "point size", file: "dash.json", body: `{"point_size": 12}`, wantErr: "point_size"},
		{name: "opacity", file: "dash.json", body: `{"opacity": 0.1}`, wantErr: "opacity"},
		{name: "timeout", file: "dash.json", body: `{"shutdown_timeout": "soon"}`, wantErr: "shutdown_timeout"},
		{name: "negative timeout", file: "dash.json", body: `{"shutdown_timeout": "-1s"}`, wantErr: "non-negative"},
		{name: "empty listen", file: "dash.json", body: `{"listen": ""}`, wantErr: "listen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDashboardConfig(writeConfig(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadDashboardConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if cfg.GetListen() != DefaultListen {
		t.Errorf("shipped listen = %q, want %q", cfg.GetListen(), DefaultListen)
	}
	if cfg.GetShutdownTimeout() != DefaultShutdownTimeout {
		t.Errorf("shipped shutdown timeout = %v", cfg.GetShutdownTimeout())
	}
}

func TestResolvePaths(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "data", "clips")
	cfg := &DashboardConfig{AudioDir: &abs}

	p := cfg.ResolvePaths("/srv/app")
	if p.DataFile != filepath.Join("/srv/app", DefaultDataFile) {
		t.Errorf("DataFile = %q", p.DataFile)
	}
	if p.AudioDir != abs {
		t.Errorf("AudioDir = %q, want absolute entry kept", p.AudioDir)
	}
	if p.ImageDir != filepath.Join("/srv/app", DefaultImageDir) {
		t.Errorf("ImageDir = %q", p.ImageDir)
	}
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file is zero config", func(t *testing.T) {
		got, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if got != (Config{}) {
			t.Fatalf("expected zero config, got %+v", got)
		}
	})

	t.Run("fields are read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "log_level: debug\nserver_address: 0.0.0.0:9000\ndata_dir: /srv/dv\nexport_format: tiff\nclip_percent: 2.5\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if got.LogLevel != "debug" || got.ServerAddress != "0.0.0.0:9000" || got.DataDir != "/srv/dv" || got.ExportFormat != "tiff" {
			t.Fatalf("unexpected config: %+v", got)
		}
		if got.ClipPercent == nil || *got.ClipPercent != 2.5 {
			t.Fatalf("unexpected clip percent: %v", got.ClipPercent)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("log_level: [unterminated\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestApplyServeConfigRespectsFlags(t *testing.T) {
	clipCfg := 3.0
	cfg := Config{ServerAddress: "0.0.0.0:1", DataDir: "/cfg", ClipPercent: &clipCfg}

	run := func(args ...string) (addr, dataDir string, clip float64) {
		t.Helper()
		cmd := &cli.Command{
			Name: "serve",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "addr", Value: "127.0.0.1:8080", Destination: &addr},
				&cli.StringFlag{Name: "data-dir", Value: ".", Destination: &dataDir},
				&cli.FloatFlag{Name: "clip", Value: 0.5, Destination: &clip},
			},
			Action: func(ctx context.Context, c *cli.Command) error {
				applyServeConfig(c, cfg, &addr, &dataDir, &clip)
				return nil
			},
		}
		if err := cmd.Run(context.Background(), append([]string{"serve"}, args...)); err != nil {
			t.Fatalf("run: %v", err)
		}
		return addr, dataDir, clip
	}

	addr, dataDir, clip := run()
	if addr != "0.0.0.0:1" || dataDir != "/cfg" || clip != 3 {
		t.Fatalf("config defaults not applied: %s %s %g", addr, dataDir, clip)
	}

	addr, dataDir, clip = run("--addr", "localhost:7", "--clip", "1")
	if addr != "localhost:7" || dataDir != "/cfg" || clip != 1 {
		t.Fatalf("flags should win over config: %s %s %g", addr, dataDir, clip)
	}
}

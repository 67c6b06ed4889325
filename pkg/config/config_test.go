package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := Build("", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.ServiceTop != 10 || cfg.CustomerTop != 10 {
		t.Errorf("Unexpected top-N defaults: %d, %d", cfg.ServiceTop, cfg.CustomerTop)
	}
	if cfg.TableLimit != 100 {
		t.Errorf("Expected default table limit 100, got %d", cfg.TableLimit)
	}
}

func TestBuildFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"8080\"\nservice_top: 5\noutput_dir: exports\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Build(path, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if cfg.Port != "8080" || cfg.ServiceTop != 5 || cfg.OutputDir != "exports" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.CustomerTop != 10 {
		t.Errorf("Expected unset key to keep default, got %d", cfg.CustomerTop)
	}
}

func TestBuildFlagOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "3000", "")
	if err := flags.Parse([]string{"--port", "9090"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Build("", flags)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected flag override 9090, got %s", cfg.Port)
	}
}

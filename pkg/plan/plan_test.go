package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `output_dir: out
jobs:
  - file: sales-2024.csv
    formats: [generic, yayoi]
    start: 2024-01-01
    end: 2024-12-31
  - file: sales-2025.csv
    service: 動画編集
`
	p, err := Load(writePlan(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.OutputDir != "out" {
		t.Errorf("Expected output_dir out, got %s", p.OutputDir)
	}
	if len(p.Jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(p.Jobs))
	}
	if p.Jobs[0].File != "sales-2024.csv" || len(p.Jobs[0].Formats) != 2 {
		t.Errorf("Unexpected first job: %+v", p.Jobs[0])
	}
	if p.Jobs[1].Service != "動画編集" {
		t.Errorf("Unexpected second job: %+v", p.Jobs[1])
	}
}

func TestLoadRejectsEmptyPlan(t *testing.T) {
	if _, err := Load(writePlan(t, "jobs: []")); err == nil {
		t.Error("Expected error for plan with no jobs")
	}
}

func TestLoadRejectsJobWithoutFile(t *testing.T) {
	content := `jobs:
  - formats: [generic]
`
	if _, err := Load(writePlan(t, content)); err == nil {
		t.Error("Expected error for job without input file")
	}
}

package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan describes a batch of export jobs loaded from a YAML file.
type Plan struct {
	OutputDir string `yaml:"output_dir"`
	Jobs      []Job  `yaml:"jobs"`
}

// Job is one input file plus the export formats and filter bounds to apply.
type Job struct {
	File      string   `yaml:"file"`
	Formats   []string `yaml:"formats"`
	Start     string   `yaml:"start"`
	End       string   `yaml:"end"`
	Service   string   `yaml:"service"`
	Breakdown string   `yaml:"breakdown"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Jobs) == 0 {
		return nil, fmt.Errorf("plan has no jobs")
	}
	for i, job := range p.Jobs {
		if job.File == "" {
			return nil, fmt.Errorf("job %d has no input file", i+1)
		}
	}
	return &p, nil
}

func (p *Plan) Print() {
	fmt.Printf("output dir: %s\n", p.OutputDir)
	for i, job := range p.Jobs {
		formats := job.Formats
		if len(formats) == 0 {
			formats = []string{"generic", "yayoi", "freee"}
		}
		fmt.Printf("[%d] file=%s formats=%v start=%s end=%s\n", i+1, job.File, formats, job.Start, job.End)
	}
}

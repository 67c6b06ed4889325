package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/watamovie/CoconalaSummary/pkg/analytics"
	"github.com/watamovie/CoconalaSummary/pkg/config"
	"github.com/watamovie/CoconalaSummary/pkg/export"
	"github.com/watamovie/CoconalaSummary/pkg/models"
	"github.com/watamovie/CoconalaSummary/pkg/parser"
	"github.com/watamovie/CoconalaSummary/pkg/plan"
)

// Processor turns sales files into accounting-import CSVs on disk.
type Processor struct {
	config *config.Config
	logger *log.Logger
	parser *parser.Parser
}

func NewProcessor(config *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		config: config,
		logger: logger,
		parser: parser.New(logger),
	}
}

// ProcessDirectory exports every sales file in dir in all formats.
func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(dir, entry); err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
		}
	}

	return nil
}

func (p *Processor) processEntry(dir string, entry os.DirEntry) error {
	if entry.IsDir() {
		return nil
	}

	fileName := strings.ToLower(entry.Name())
	if !strings.HasSuffix(fileName, ".csv") && !strings.HasSuffix(fileName, ".xls") {
		return nil
	}

	inputPath := filepath.Join(dir, entry.Name())
	return p.ProcessFile(inputPath, analytics.Filter{}, export.Formats, p.config.OutputDir)
}

// ProcessFile parses one sales file, applies the filter and writes one
// Shift-JIS CSV per requested format.
func (p *Processor) ProcessFile(inputPath string, filter analytics.Filter, formats []export.Format, outputDir string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	records, err := p.parser.ProcessBytes(data, filepath.Base(inputPath))
	if err != nil {
		return fmt.Errorf("failed to process file: %w", err)
	}

	subset := filter.Apply(records)
	p.logger.Info("processing file", "path", inputPath, "records", len(records), "filtered", len(subset))

	for _, format := range formats {
		outputPath := p.determineOutputPath(inputPath, format, outputDir)
		if err := writeExport(format, subset, outputPath); err != nil {
			return err
		}
		p.logger.Info("wrote export", "input", inputPath, "output", outputPath, "format", format)
	}

	return nil
}

// RunPlan executes every job of a batch plan.
func (p *Processor) RunPlan(pl *plan.Plan) error {
	outputDir := pl.OutputDir
	if outputDir == "" {
		outputDir = p.config.OutputDir
	}

	for i, job := range pl.Jobs {
		filter, err := analytics.FilterFromStrings(job.Start, job.End, job.Service, job.Breakdown)
		if err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}

		formats := make([]export.Format, 0, len(job.Formats))
		for _, name := range job.Formats {
			formats = append(formats, export.Format(name))
		}
		if len(formats) == 0 {
			formats = export.Formats
		}

		if err := p.ProcessFile(job.File, filter, formats, outputDir); err != nil {
			return fmt.Errorf("job %d: %w", i+1, err)
		}
	}

	return nil
}

func (p *Processor) determineOutputPath(inputPath string, format export.Format, outputDir string) string {
	fileName := filepath.Base(inputPath)
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)
	outName := fmt.Sprintf("%s-%s.csv", baseName, format)
	if outputDir != "" {
		return filepath.Join(outputDir, outName)
	}
	return filepath.Join(filepath.Dir(inputPath), outName)
}

func writeExport(format export.Format, subset []models.SalesRecord, outputPath string) error {
	text, err := export.Render(format, subset)
	if err != nil {
		return fmt.Errorf("error rendering %s export: %w", format, err)
	}

	encoded, err := export.EncodeShiftJIS(text)
	if err != nil {
		return fmt.Errorf("error encoding %s export: %w", format, err)
	}

	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}

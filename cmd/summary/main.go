package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/watamovie/CoconalaSummary/pkg/config"
	"github.com/watamovie/CoconalaSummary/pkg/service"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "sales-summary",
	})

	var outputDir string
	flag.StringVar(&outputDir, "o", "", "Output directory (default: same as input file)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		logger.Error("invalid usage", "args", args)
		fmt.Fprintf(os.Stderr, "Usage: summary [-o output_dir] <directory>\n")
		os.Exit(1)
	}

	cfg, err := config.Build("", nil)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	processor := service.NewProcessor(cfg, logger)

	dir := args[0]
	if err := processor.ProcessDirectory(dir); err != nil {
		logger.Fatal("processing failed", "error", err)
	}
}

// Command telemetry-report analyses vehicle simulation telemetry: one report
// per scenario file plus a comparison of every scenario that loaded.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/banshee-data/telemetry.report/internal/analysis"
	"github.com/banshee-data/telemetry.report/internal/config"
	"github.com/banshee-data/telemetry.report/internal/fsutil"
	"github.com/banshee-data/telemetry.report/internal/monitoring"
	"github.com/banshee-data/telemetry.report/internal/version"
)

var (
	dataDir     = flag.String("dir", ".", "Directory searched for scenario files")
	pattern     = flag.String("pattern", analysis.DefaultPattern, "Scenario file pattern inside -dir")
	inputList   = flag.String("inputs", "", "Comma-separated telemetry files (overrides -dir)")
	labelList   = flag.String("labels", "", "Comma-separated labels for -inputs")
	outDir      = flag.String("out", ".", "Output directory")
	configPath  = flag.String("config", "", "Analysis config JSON (defaults built in)")
	writePNG    = flag.Bool("png", true, "Write PNG dashboards and comparison chart")
	writeHTML   = flag.Bool("html", false, "Write interactive HTML comparison page")
	writePDF    = flag.Bool("pdf", false, "Write a PDF summary per scenario")
	quiet       = flag.Bool("quiet", false, "Do not print detailed reports to stdout")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// resolveInputs uses the explicit input list when given, otherwise discovers
// scenario files in dir.
func resolveInputs(fsys fsutil.FileSystem, dir, pattern, inputs, labels string) ([]analysis.Input, error) {
	if paths := splitList(inputs); len(paths) > 0 {
		return analysis.InputsFromPaths(paths, splitList(labels))
	}
	if labels != "" {
		return nil, fmt.Errorf("-labels requires -inputs")
	}
	return analysis.Discover(fsys, dir, pattern)
}

func loadConfig(path string) (*config.AnalysisConfig, error) {
	if path == "" {
		return config.DefaultAnalysisConfig(), nil
	}
	return config.LoadAnalysisConfig(path)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fsys := fsutil.OSFileSystem{}
	inputs, err := resolveInputs(fsys, *dataDir, *pattern, *inputList, *labelList)
	if err != nil {
		log.Fatalf("failed to resolve inputs: %v", err)
	}
	if len(inputs) == 0 {
		log.Printf("no simulation CSV files found in %s matching %s", *dataDir, *pattern)
		os.Exit(1)
	}
	log.Printf("found %d scenario file(s)", len(inputs))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := analysis.NewRunner(fsys, cfg, analysis.Outputs{
		Dir:  *outDir,
		PNG:  *writePNG,
		HTML: *writeHTML,
		PDF:  *writePDF,
	})
	if !*quiet {
		runner.Stdout = os.Stdout
	}

	batch, err := runner.Run(ctx, inputs)
	if err != nil {
		stop()
		log.Fatalf("analysis failed: %v", err)
	}

	for _, o := range batch.Outcomes {
		if o.Err != nil {
			log.Printf("%s: %s: %v", o.Input.Label, o.Status, o.Err)
		}
	}
	analysed := len(batch.Analysed())
	if analysed == 0 {
		log.Printf("no scenario could be analysed")
		stop()
		os.Exit(1)
	}
	log.Printf("analysis complete: %d of %d scenario(s), batch %s", analysed, len(inputs), batch.ID)
}

// Package analysis drives a batch of telemetry runs: it loads each input,
// assembles its report bundle, writes the per-run outputs and finally
// compares the runs that loaded cleanly.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/telemetry.report/internal/compare"
	"github.com/banshee-data/telemetry.report/internal/config"
	"github.com/banshee-data/telemetry.report/internal/fsutil"
	"github.com/banshee-data/telemetry.report/internal/metrics"
	"github.com/banshee-data/telemetry.report/internal/monitoring"
	"github.com/banshee-data/telemetry.report/internal/render"
	"github.com/banshee-data/telemetry.report/internal/report"
	"github.com/banshee-data/telemetry.report/internal/security"
	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/timeutil"
)

var logf = monitoring.Scoped("analysis")

// Output file names. Per-run names take the sanitised run label.
const (
	summaryPrefix    = "summary_report_"
	detailedPrefix   = "detailed_report_"
	dashboardPrefix  = "analysis_"
	comparisonPrefix = "scenario_comparison"
)

// Outputs selects where results go and which optional formats are written.
// Text reports are always written.
type Outputs struct {
	Dir  string
	PNG  bool
	HTML bool
	PDF  bool
}

// Status is what happened to one input.
type Status int

const (
	StatusPending  Status = iota // not reached before the batch stopped
	StatusAnalysed
	StatusSkipped // source could not be read
	StatusFailed  // source was read but is malformed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAnalysed:
		return "analysed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the result for one input. Bundle and Series are set only when
// Status is StatusAnalysed; Err only when it is not.
type Outcome struct {
	Input  Input
	Status Status
	Bundle *report.Bundle
	Series *telemetry.Series
	Err    error
	Files  []string
}

// Batch is the result of one Run.
type Batch struct {
	ID         string
	StartedAt  time.Time
	Outcomes   []Outcome       // input order
	Comparison *compare.Result // nil when nothing was analysed
	Files      []string        // comparison outputs
}

// Analysed returns the outcomes that produced a report, in input order.
func (b *Batch) Analysed() []Outcome {
	var out []Outcome
	for _, o := range b.Outcomes {
		if o.Status == StatusAnalysed {
			out = append(out, o)
		}
	}
	return out
}

// Runner analyses batches of runs. The zero value is not usable; build one
// with NewRunner or fill every field.
type Runner struct {
	FS      fsutil.FileSystem
	Engine  *metrics.Engine
	Config  *config.AnalysisConfig
	Clock   timeutil.Clock
	Outputs Outputs

	// Stdout, when set, receives the detailed and correlation text for each
	// run as it completes.
	Stdout io.Writer

	stdoutMu sync.Mutex
}

// NewRunner builds a Runner on fsys with an engine derived from cfg.
func NewRunner(fsys fsutil.FileSystem, cfg *config.AnalysisConfig, out Outputs) *Runner {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	return &Runner{
		FS:      fsys,
		Engine:  metrics.NewEngine(cfg.MetricsConstants()),
		Config:  cfg,
		Clock:   timeutil.RealClock{},
		Outputs: out,
	}
}

// Run analyses inputs concurrently, up to max_parallel at a time, then
// compares the runs that succeeded. Unreadable or malformed inputs are
// recorded in their Outcome and do not stop the batch. Run returns an error
// only when an output cannot be written or ctx ends first.
func (r *Runner) Run(ctx context.Context, inputs []Input) (*Batch, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	if err := checkLabels(inputs); err != nil {
		return nil, err
	}

	if d := r.Config.GetRunTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	batch := &Batch{
		ID:        uuid.New().String(),
		StartedAt: r.Clock.Now(),
		Outcomes:  make([]Outcome, len(inputs)),
	}
	logf("batch %s started at %s with %d input(s)", batch.ID, timeutil.RunStamp(batch.StartedAt), len(inputs))

	if r.Outputs.Dir != "" {
		if err := r.FS.MkdirAll(r.Outputs.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Config.GetMaxParallel())
	for i, in := range inputs {
		i, in := i, in // per-iteration copies; go directive is below 1.22
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := r.analyse(batch.ID, in)
			batch.Outcomes[i] = o
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return batch, err
	}

	analysed := batch.Analysed()
	if len(analysed) == 0 {
		logf("no scenario could be analysed")
		return batch, nil
	}

	series := make([]*telemetry.Series, len(analysed))
	labels := make([]string, len(analysed))
	for i, o := range analysed {
		series[i] = o.Series
		labels[i] = o.Input.Label
	}
	res, err := compare.Compare(series, labels)
	if err != nil {
		return batch, err
	}
	batch.Comparison = res

	if res.Insufficient {
		logf("not enough scenarios to compare: need at least 2, have %d", len(analysed))
		return batch, nil
	}
	if err := ctx.Err(); err != nil {
		return batch, err
	}

	files, err := r.writeComparison(analysed, res)
	batch.Files = files
	if err != nil {
		return batch, err
	}
	if best, ok := res.Best(); ok {
		logf("compared %d scenarios; lowest fuel %s (%.3f L)", len(analysed), best.Label, best.TotalFuel)
	}
	return batch, nil
}

// checkLabels rejects duplicate labels since they name output files.
func checkLabels(inputs []Input) error {
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		name := security.SanitizeFilename(in.Label)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("inputs %s and %s share the label %q", prev, in.Path, in.Label)
		}
		seen[name] = in.Path
	}
	return nil
}

// analyse loads and reports one input. The returned error is reserved for
// output failures; input problems are recorded on the Outcome.
func (r *Runner) analyse(runID string, in Input) (Outcome, error) {
	o := Outcome{Input: in}

	s, err := telemetry.LoadFile(r.FS, in.Path)
	if err != nil {
		o.Err = err
		if telemetry.IsSourceUnavailable(err) {
			o.Status = StatusSkipped
			logf("skipping %s: %v", in.Label, err)
		} else {
			o.Status = StatusFailed
			logf("failed to load %s: %v", in.Label, err)
		}
		return o, nil
	}
	logf("loaded %d rows from %s", s.Len(), filepath.Base(in.Path))

	if err := s.Validate(); err != nil {
		logf("warning: %s: %v", in.Label, err)
	}

	b := report.Assemble(r.Engine, r.Config, s, in.Label)
	b.RunID = runID
	b.Source = filepath.Base(in.Path)
	b.GeneratedAt = r.Clock.Now()

	o.Status = StatusAnalysed
	o.Series = s
	o.Bundle = b

	files, err := r.writeRun(b, s)
	o.Files = files
	return o, err
}

func (r *Runner) writeRun(b *report.Bundle, s *telemetry.Series) ([]string, error) {
	name := security.SanitizeFilename(b.Label)
	var files []string

	add := func(file string, fill func(io.Writer) error) error {
		path, err := r.writeFile(file, fill)
		if err != nil {
			return err
		}
		files = append(files, path)
		return nil
	}

	if err := add(summaryPrefix+name+".txt", func(w io.Writer) error {
		return report.WriteSummary(w, b)
	}); err != nil {
		return files, err
	}

	var detail bytes.Buffer
	if err := report.WriteDetailed(&detail, b); err != nil {
		return files, err
	}
	if err := report.WriteCorrelation(&detail, b); err != nil {
		return files, err
	}
	if err := add(detailedPrefix+name+".txt", func(w io.Writer) error {
		_, err := w.Write(detail.Bytes())
		return err
	}); err != nil {
		return files, err
	}
	r.echo(detail.Bytes())

	if !r.Outputs.PNG && !r.Outputs.PDF {
		return files, nil
	}

	var dashboard bytes.Buffer
	if err := render.WriteRunDashboard(&dashboard, b.Label, report.NewPlotData(r.Engine, r.Config, s)); err != nil {
		return files, fmt.Errorf("%s dashboard: %w", b.Label, err)
	}
	if r.Outputs.PNG {
		if err := add(dashboardPrefix+name+".png", func(w io.Writer) error {
			_, err := w.Write(dashboard.Bytes())
			return err
		}); err != nil {
			return files, err
		}
	}
	if r.Outputs.PDF {
		if err := add(dashboardPrefix+name+".pdf", func(w io.Writer) error {
			return report.WritePDF(w, b, dashboard.Bytes())
		}); err != nil {
			return files, err
		}
	}
	return files, nil
}

func (r *Runner) writeComparison(analysed []Outcome, res *compare.Result) ([]string, error) {
	unit := r.Config.GetSpeedUnits()
	var files []string

	path, err := r.writeFile(comparisonPrefix+".txt", func(w io.Writer) error {
		return report.WriteComparison(w, res, unit)
	})
	if err != nil {
		return files, err
	}
	files = append(files, path)

	if !r.Outputs.PNG && !r.Outputs.HTML {
		return files, nil
	}

	traces := make([]render.Trace, len(analysed))
	for i, o := range analysed {
		traces[i] = render.NewTrace(o.Input.Label, o.Series, unit)
	}

	if r.Outputs.PNG {
		path, err := r.writeFile(comparisonPrefix+".png", func(w io.Writer) error {
			return render.WriteComparisonPNG(w, traces, res)
		})
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	if r.Outputs.HTML {
		path, err := r.writeFile(comparisonPrefix+".html", func(w io.Writer) error {
			return render.WriteComparisonHTML(w, traces, res)
		})
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

// writeFile renders name in memory and writes it under the output directory.
func (r *Runner) writeFile(name string, fill func(io.Writer) error) (string, error) {
	path, err := security.ContainedPath(r.Outputs.Dir, name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := r.FS.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logf("wrote %s", path)
	return path, nil
}

func (r *Runner) echo(p []byte) {
	if r.Stdout == nil {
		return
	}
	r.stdoutMu.Lock()
	defer r.stdoutMu.Unlock()
	if _, err := r.Stdout.Write(p); err != nil {
		logf("failed to echo report: %v", err)
	}
}

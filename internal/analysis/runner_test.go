package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/telemetry.report/internal/config"
	"github.com/banshee-data/telemetry.report/internal/fsutil"
	"github.com/banshee-data/telemetry.report/internal/monitoring"
	"github.com/banshee-data/telemetry.report/internal/render"
	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/testutil"
	"github.com/banshee-data/telemetry.report/internal/timeutil"
)

var batchTime = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

func quietLogs(t *testing.T) {
	t.Helper()
	prev := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(prev) })
}

func newTestRunner(fsys fsutil.FileSystem, out Outputs) *Runner {
	r := NewRunner(fsys, config.DefaultAnalysisConfig(), out)
	r.Clock = timeutil.FixedClock{T: batchTime}
	return r
}

func writeScenario(t *testing.T, fsys *fsutil.MemoryFileSystem, n int, fuel float64) string {
	t.Helper()
	path := filepath.Join("data", fmt.Sprintf("vehicle_simulation_scenario_%d.csv", n))
	require.NoError(t, fsys.WriteFile(path, []byte(testutil.ConstantSpeedSeriesCSV(11, 10, fuel)), 0o644))
	return path
}

func TestRun_AnalysesComparesAndSkips(t *testing.T) {
	quietLogs(t)
	fsys := fsutil.NewMemoryFileSystem()
	p1 := writeScenario(t, fsys, 1, 0.002)
	p2 := writeScenario(t, fsys, 2, 0.001)

	inputs := []Input{
		{Path: p1, Label: "Scenario_1"},
		{Path: p2, Label: "Scenario_2"},
		{Path: "data/vehicle_simulation_scenario_3.csv", Label: "Scenario_3"},
	}

	r := newTestRunner(fsys, Outputs{Dir: "out"})
	batch, err := r.Run(context.Background(), inputs)
	require.NoError(t, err)

	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, batchTime, batch.StartedAt)

	statuses := make([]Status, len(batch.Outcomes))
	for i, o := range batch.Outcomes {
		statuses[i] = o.Status
	}
	if diff := cmp.Diff([]Status{StatusAnalysed, StatusAnalysed, StatusSkipped}, statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, telemetry.IsSourceUnavailable(batch.Outcomes[2].Err))
	assert.Nil(t, batch.Outcomes[2].Bundle)

	b := batch.Outcomes[0].Bundle
	require.NotNil(t, b)
	assert.Equal(t, batch.ID, b.RunID)
	assert.Equal(t, "vehicle_simulation_scenario_1.csv", b.Source)
	assert.Equal(t, batchTime, b.GeneratedAt)
	assert.InDelta(t, 100.0, b.Derived.Distance, 1e-9)
	assert.InDelta(t, 0.022, b.Derived.TotalFuel, 1e-12)

	require.NotNil(t, batch.Comparison)
	require.False(t, batch.Comparison.Insufficient)
	best, ok := batch.Comparison.Best()
	require.True(t, ok)
	assert.Equal(t, "Scenario_2", best.Label)

	want := []string{
		"data/vehicle_simulation_scenario_1.csv",
		"data/vehicle_simulation_scenario_2.csv",
		"out/detailed_report_Scenario_1.txt",
		"out/detailed_report_Scenario_2.txt",
		"out/scenario_comparison.txt",
		"out/summary_report_Scenario_1.txt",
		"out/summary_report_Scenario_2.txt",
	}
	if diff := cmp.Diff(want, fsys.Files()); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"out/scenario_comparison.txt"}, batch.Files)

	summary, err := fsys.ReadFile("out/summary_report_Scenario_1.txt")
	require.NoError(t, err)
	assert.Contains(t, string(summary), "SIMULATION SUMMARY REPORT - Scenario_1")
	assert.Contains(t, string(summary), "Run: "+batch.ID)

	comparison, err := fsys.ReadFile("out/scenario_comparison.txt")
	require.NoError(t, err)
	assert.Contains(t, string(comparison), "1. Scenario_2")
	assert.Contains(t, string(comparison), "2. Scenario_1")
}

func TestRun_MalformedInputFails(t *testing.T) {
	quietLogs(t)
	fsys := fsutil.NewMemoryFileSystem()
	good := writeScenario(t, fsys, 1, 0.001)
	bad := "data/bad.csv"
	require.NoError(t, fsys.WriteFile(bad, []byte(testutil.TelemetryHeader+"\n0,1,2\n"), 0o644))

	r := newTestRunner(fsys, Outputs{Dir: "out"})
	batch, err := r.Run(context.Background(), []Input{
		{Path: good, Label: "Scenario_1"},
		{Path: bad, Label: "bad"},
	})
	require.NoError(t, err)

	require.Len(t, batch.Outcomes, 2)
	assert.Equal(t, StatusAnalysed, batch.Outcomes[0].Status)
	assert.Equal(t, StatusFailed, batch.Outcomes[1].Status)
	assert.True(t, telemetry.IsMalformed(batch.Outcomes[1].Err))

	require.NotNil(t, batch.Comparison)
	assert.True(t, batch.Comparison.Insufficient)
	assert.Empty(t, batch.Files)
	assert.False(t, fsys.Exists("out/scenario_comparison.txt"))
}

func TestRun_NothingAnalysed(t *testing.T) {
	quietLogs(t)
	fsys := fsutil.NewMemoryFileSystem()

	r := newTestRunner(fsys, Outputs{Dir: "out"})
	batch, err := r.Run(context.Background(), []Input{{Path: "missing.csv", Label: "missing"}})
	require.NoError(t, err)
	assert.Empty(t, batch.Analysed())
	assert.Nil(t, batch.Comparison)
}

func TestRun_DuplicateLabels(t *testing.T) {
	quietLogs(t)
	r := newTestRunner(fsutil.NewMemoryFileSystem(), Outputs{})
	_, err := r.Run(context.Background(), []Input{
		{Path: "a.csv", Label: "run 1"},
		{Path: "b.csv", Label: "run_1"},
	})
	testutil.AssertError(t, err)
	assert.Contains(t, err.Error(), "share the label")
}

func TestRun_InvalidConfig(t *testing.T) {
	quietLogs(t)
	r := newTestRunner(fsutil.NewMemoryFileSystem(), Outputs{})
	zero := 0
	r.Config.MaxParallel = &zero

	_, err := r.Run(context.Background(), nil)
	testutil.AssertError(t, err)
	assert.Contains(t, err.Error(), "max_parallel")
}

func TestRun_CancelledContext(t *testing.T) {
	quietLogs(t)
	fsys := fsutil.NewMemoryFileSystem()
	p := writeScenario(t, fsys, 1, 0.001)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(fsys, Outputs{Dir: "out"})
	batch, err := r.Run(ctx, []Input{{Path: p, Label: "Scenario_1"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, batch)
	assert.Equal(t, StatusPending, batch.Outcomes[0].Status)
}

func TestRun_GraphicalOutputs(t *testing.T) {
	quietLogs(t)
	dw, dh := render.DashboardWidth, render.DashboardHeight
	cw, ch := render.ComparisonWidth, render.ComparisonHeight
	render.DashboardWidth, render.DashboardHeight = 9*vg.Inch, 10*vg.Inch
	render.ComparisonWidth, render.ComparisonHeight = 8*vg.Inch, 6*vg.Inch
	t.Cleanup(func() {
		render.DashboardWidth, render.DashboardHeight = dw, dh
		render.ComparisonWidth, render.ComparisonHeight = cw, ch
	})

	fsys := fsutil.NewMemoryFileSystem()
	p1 := writeScenario(t, fsys, 1, 0.001)
	p2 := writeScenario(t, fsys, 2, 0.002)

	var stdout bytes.Buffer
	r := newTestRunner(fsys, Outputs{Dir: "out", PNG: true, HTML: true, PDF: true})
	r.Stdout = &stdout

	batch, err := r.Run(context.Background(), []Input{
		{Path: p1, Label: "Scenario_1"},
		{Path: p2, Label: "Scenario_2"},
	})
	require.NoError(t, err)

	for _, name := range []string{"out/analysis_Scenario_1.png", "out/analysis_Scenario_2.png", "out/scenario_comparison.png"} {
		data, err := fsys.ReadFile(name)
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), name)
	}

	pdf, err := fsys.ReadFile("out/analysis_Scenario_1.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	html, err := fsys.ReadFile("out/scenario_comparison.html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "Scenario_2")

	assert.Len(t, batch.Outcomes[0].Files, 4)
	assert.Len(t, batch.Files, 3)

	echoed := stdout.String()
	assert.Equal(t, 1, strings.Count(echoed, "DETAILED STATISTICAL ANALYSIS - Scenario_1"))
	assert.Equal(t, 1, strings.Count(echoed, "CORRELATION ANALYSIS - Scenario_2"))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "analysed", StatusAnalysed.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "status(9)", Status(9).String())
}

package analysis

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/banshee-data/telemetry.report/internal/fsutil"
)

// DefaultPattern matches the simulator's per-scenario output files.
const DefaultPattern = "vehicle_simulation_scenario_*.csv"

// Input is one telemetry file to analyse and the label it is reported under.
type Input struct {
	Path  string
	Label string
}

var scenarioIndex = regexp.MustCompile(`(\d+)$`)

// scenarioNumber returns the trailing integer of the file stem, if any.
func scenarioNumber(path string) (int, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := scenarioIndex.FindStringSubmatch(stem)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DefaultLabel names a run after its file: Scenario_<n> when the file stem
// ends in a number, otherwise the stem itself.
func DefaultLabel(path string) string {
	if n, ok := scenarioNumber(path); ok {
		return fmt.Sprintf("Scenario_%d", n)
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Discover lists the files in dir matching pattern, ordered by scenario
// number. Files without a number sort after numbered ones, by name.
func Discover(fsys fsutil.FileSystem, dir, pattern string) ([]Input, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if strings.ContainsRune(pattern, filepath.Separator) {
		return nil, fmt.Errorf("pattern %q must not contain a path separator", pattern)
	}

	matches, err := fsys.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		ni, oki := scenarioNumber(matches[i])
		nj, okj := scenarioNumber(matches[j])
		switch {
		case oki && okj && ni != nj:
			return ni < nj
		case oki != okj:
			return oki
		}
		return matches[i] < matches[j]
	})

	inputs := make([]Input, len(matches))
	for i, path := range matches {
		inputs[i] = Input{Path: path, Label: DefaultLabel(path)}
	}
	return inputs, nil
}

// InputsFromPaths pairs explicit paths with labels. With no labels every
// path gets its DefaultLabel; otherwise the counts must match.
func InputsFromPaths(paths, labels []string) ([]Input, error) {
	if len(labels) > 0 && len(labels) != len(paths) {
		return nil, fmt.Errorf("got %d labels for %d inputs", len(labels), len(paths))
	}

	inputs := make([]Input, 0, len(paths))
	for i, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("input %d: empty path", i+1)
		}
		label := DefaultLabel(p)
		if len(labels) > 0 {
			if l := strings.TrimSpace(labels[i]); l != "" {
				label = l
			}
		}
		inputs = append(inputs, Input{Path: p, Label: label})
	}
	return inputs, nil
}

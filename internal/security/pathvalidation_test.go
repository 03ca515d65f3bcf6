package security

import (
	"path/filepath"
	"testing"
)

func TestContainedPath(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		file    string
		want    string
		wantErr bool
	}{
		{"plain file", "out", "summary_report_run.txt", filepath.Join("out", "summary_report_run.txt"), false},
		{"nested file", "out", "plots/run.png", filepath.Join("out", "plots", "run.png"), false},
		{"dot segments inside", "out", "a/../b.txt", filepath.Join("out", "b.txt"), false},
		{"parent escape", "out", "../etc/passwd", "", true},
		{"deep escape", "out", "a/../../x", "", true},
		{"absolute name", "out", "/etc/passwd", "", true},
		{"empty name", "out", "", "", true},
		{"dir itself", "out", ".", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ContainedPath(tt.dir, tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ContainedPath(%q, %q) = %q, expected error", tt.dir, tt.file, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ContainedPath(%q, %q) unexpected error: %v", tt.dir, tt.file, err)
			}
			if got != tt.want {
				t.Errorf("ContainedPath(%q, %q) = %q, want %q", tt.dir, tt.file, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"Scenario_1", "Scenario_1"},
		{"city run #2", "city_run_2"},
		{"../../etc/passwd", "etc_passwd"},
		{"___", "unknown"},
		{"hwy-A1.v2", "hwy-A1.v2"},
		{"a   b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Length(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	if got := SanitizeFilename(string(long)); len(got) != 128 {
		t.Errorf("len(SanitizeFilename(300 chars)) = %d, want 128", len(got))
	}
}

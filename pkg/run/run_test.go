package run_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/MaineK00n/amalgamate/pkg/run"
	"github.com/MaineK00n/amalgamate/pkg/types"
)

const single = `{
  "advisories": {"1": {"title": "X", "severity": "high", "url": "http://x"}},
  "actions": [
    {"action": "install", "module": "c", "target": "1.0.0", "resolves": [{"id": 1, "path": "a>b>c", "dev": false, "optional": false, "bundled": false}]}
  ]
}`

const mixed = `{
  "advisories": {
    "1": {"title": "Low one", "severity": "low", "url": "http://low"},
    "2": {"title": "Critical one", "severity": "critical", "url": "http://critical"}
  },
  "actions": [
    {"action": "install", "module": "p", "resolves": [{"id": 1, "path": "p", "dev": false, "optional": false, "bundled": false}]},
    {"action": "update", "module": "d", "depth": 2, "resolves": [{"id": 2, "path": "tool>d", "dev": true, "optional": false, "bundled": false}]}
  ]
}`

var (
	top    = "┌" + strings.Repeat("─", 100) + "┐"
	sep    = "│" + strings.Repeat("─", 100) + "│"
	bottom = "└" + strings.Repeat("─", 100) + "┘"
)

func detailRow(label, value string) string {
	return fmt.Sprintf("│%-15s│ %-83s│", label, value)
}

func summaryRow(label, value string) string {
	return fmt.Sprintf("│%-30s│ %-68s│", label, value)
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "web.json", single)
	out := filepath.Join(dir, "report.txt")

	if err := run.Run(out, "both", []string{in}, run.WithNoProgress(true)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		top,
		summaryRow("Project", "Critical  High      Moderate  Low       Info"),
		sep,
		summaryRow("web", "0         1         0         0         0"),
		bottom,
		top,
		detailRow("High", "X"),
		sep,
		detailRow("Package", "c"),
		sep,
		detailRow("Dependency of", "a"),
		sep,
		detailRow("Path", "a > b > c"),
		sep,
		detailRow("More info", "http://x"),
		sep,
		detailRow("Project", in),
		bottom,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Run(). (-expected +got):\n%s", diff)
	}
}

func TestRun_Kind(t *testing.T) {
	dir := t.TempDir()
	in := write(t, dir, "api.json", mixed)

	tests := []struct {
		kind     string
		wantDev  bool
		wantProd bool
	}{
		{kind: "dependencies", wantProd: true},
		{kind: "devDependencies", wantDev: true},
		{kind: "both", wantDev: true, wantProd: true},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			out := filepath.Join(dir, tt.kind+".txt")
			if err := run.Run(out, tt.kind, []string{in}, run.WithNoProgress(true), run.WithSummary(false)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			bs, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			got := string(bs)

			if dev := strings.Contains(got, detailRow("Dependency of", "tool [dev]")); dev != tt.wantDev {
				t.Errorf("Run(%s) contains dev finding = %v, want %v", tt.kind, dev, tt.wantDev)
			}
			if prod := strings.Contains(got, detailRow("Dependency of", "p")); prod != tt.wantProd {
				t.Errorf("Run(%s) contains prod finding = %v, want %v", tt.kind, prod, tt.wantProd)
			}
			if strings.Contains(got, "Critical  High") {
				t.Errorf("Run(%s) rendered a summary panel with the summary disabled", tt.kind)
			}
		})
	}
}

func TestRun_Merge(t *testing.T) {
	dir := t.TempDir()
	api := write(t, dir, "api.json", mixed)
	web := write(t, dir, "web.json", single)
	out := filepath.Join(dir, "report.txt")

	if err := run.Run(out, "both", []string{api, web}, run.WithNoProgress(true)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	bs, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(bs)

	for _, s := range []string{
		summaryRow("api", "1         0         0         1         0"),
		summaryRow("web", "0         1         0         0         0"),
	} {
		if !strings.Contains(got, s) {
			t.Errorf("Run() output lacks summary row %q", s)
		}
	}

	var order []string
	for _, l := range strings.Split(got, "\n") {
		for _, s := range []types.Severity{types.SeverityCritical, types.SeverityHigh, types.SeverityLow} {
			if strings.HasPrefix(l, fmt.Sprintf("│%-15s│", s.Title())) {
				order = append(order, s.Title())
			}
		}
	}
	if diff := cmp.Diff([]string{"Critical", "High", "Low"}, order); diff != "" {
		t.Errorf("Run() panel order. (-expected +got):\n%s", diff)
	}
}

func TestRun_Error(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.json", single)
	bad := write(t, dir, "bad.json", `{"advisories": {}, "actions": [{"action": "install", "module": "a", "resolves": [{"id": 7, "path": "a", "dev": false, "optional": false, "bundled": false}]}]}`)

	tests := []struct {
		name    string
		kind    string
		inputs  []string
		opts    []run.Option
		wantErr error
	}{
		{
			name:    "invalid kind",
			kind:    "optional",
			inputs:  []string{good},
			wantErr: types.ErrInvalidConfiguration,
		},
		{
			name:    "no inputs",
			kind:    "both",
			wantErr: types.ErrInvalidConfiguration,
		},
		{
			name:    "invalid width",
			kind:    "both",
			inputs:  []string{good},
			opts:    []run.Option{run.WithWidth(10)},
			wantErr: types.ErrInvalidConfiguration,
		},
		{
			name:    "missing advisory",
			kind:    "both",
			inputs:  []string{good, bad},
			wantErr: types.ErrMalformedInput,
		},
		{
			name:    "missing input",
			kind:    "both",
			inputs:  []string{good, filepath.Join(dir, "missing.json")},
			wantErr: types.ErrIO,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, "report.txt")
			if err := os.WriteFile(out, []byte("previous"), 0644); err != nil {
				t.Fatal(err)
			}

			err := run.Run(out, tt.kind, tt.inputs, append(tt.opts, run.WithNoProgress(true))...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			bs, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if string(bs) != "previous" {
				t.Errorf("Run() modified the output on failure: %q", string(bs))
			}
		})
	}
}

func TestRun_InvalidKindCreatesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.txt")
	if err := run.Run(out, "all", []string{"does-not-matter.json"}, run.WithNoProgress(true)); !errors.Is(err, types.ErrInvalidConfiguration) {
		t.Fatalf("Run() error = %v, want %v", err, types.ErrInvalidConfiguration)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() created %s: %v", out, err)
	}
}

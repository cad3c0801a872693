package version

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pyformat/internal/config"
	"pyformat/internal/domain"
	"pyformat/internal/logging"
)

type fakeExecutor struct {
	outputs map[string]string
	err     error
}

func (f fakeExecutor) Execute(ctx context.Context, probes []domain.Probe) ([]domain.ProbeResult, time.Duration, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	results := make([]domain.ProbeResult, len(probes))
	for i, probe := range probes {
		out, ok := f.outputs[probe.Name]
		results[i] = domain.ProbeResult{Name: probe.Name, Success: ok, Output: out, Duration: 2 * time.Millisecond}
		if !ok {
			results[i].Error = errors.New("exit status 127")
		}
	}
	return results, time.Millisecond, nil
}

func TestGenerator_Generate(t *testing.T) {
	fixed := time.Date(2026, 10, 17, 11, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	tests := []struct {
		name     string
		outputs  map[string]string
		expected domain.Version
	}{
		{
			name: "all probes succeed",
			outputs: map[string]string{
				GitProbe:    "0123abcd\n",
				PythonProbe: "Python 3.12.1\n",
				RustProbe:   "rustc 1.80.0 (051478957 2024-07-21)\n",
			},
			expected: domain.Version{
				RevID:    "0123abcd",
				Datetime: fixed.UTC(),
				LanguageVersions: []string{
					"Python version: Python 3.12.1",
					"Rust version: rustc 1.80.0 (051478957 2024-07-21)",
				},
			},
		},
		{
			name:    "failed probes leave empty values",
			outputs: map[string]string{PythonProbe: "Python 3.12.1"},
			expected: domain.Version{
				Datetime:         fixed.UTC(),
				LanguageVersions: []string{"Python version: Python 3.12.1", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(nil, config.New(), fakeExecutor{outputs: tt.outputs})
			g.now = func() time.Time { return fixed }

			v, err := g.Generate(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.RevID != tt.expected.RevID {
				t.Errorf("expected revid %q, got %q", tt.expected.RevID, v.RevID)
			}
			if !v.Datetime.Equal(tt.expected.Datetime) || v.Datetime.Location() != time.UTC {
				t.Errorf("expected %v in UTC, got %v", tt.expected.Datetime, v.Datetime)
			}
			if len(v.LanguageVersions) != len(tt.expected.LanguageVersions) {
				t.Fatalf("expected %v, got %v", tt.expected.LanguageVersions, v.LanguageVersions)
			}
			for i := range v.LanguageVersions {
				if v.LanguageVersions[i] != tt.expected.LanguageVersions[i] {
					t.Errorf("expected %q, got %q", tt.expected.LanguageVersions[i], v.LanguageVersions[i])
				}
			}
		})
	}
}

func TestGenerator_GenerateCancelled(t *testing.T) {
	g := NewGenerator(nil, config.New(), fakeExecutor{err: context.Canceled})
	if _, err := g.Generate(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerator_Probes(t *testing.T) {
	cfg := config.New()
	probes := NewGenerator(nil, cfg, nil).Probes()
	if len(probes) != 3 || probes[0].Name != GitProbe || probes[0].Command[0] != "git" {
		t.Errorf("unexpected probes %v", probes)
	}
}

func TestGenerator_LogsProbeDurations(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(&out, "debug")
	if err != nil {
		t.Fatal(err)
	}
	g := NewGenerator(logger, config.New(), fakeExecutor{outputs: map[string]string{GitProbe: "0123abcd"}})

	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Version probe finished. probe=git duration=2ms",
		"Version probe failed. probe=python duration=2ms",
		"Version probe failed. probe=rust duration=2ms",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in the log:\n%s", want, out.String())
		}
	}
}

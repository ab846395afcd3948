package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/galois"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/table"
)

// execute runs the root command with args and returns what it printed to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between runs
	verbose = false
	tapsFile = ""
	stepStart, stepCount, stepDown = 0, 16, false
	verifyQuiet = false
	genOutDir, genNPY, genQuiet, genMaxWidth = ".", false, false, table.DefaultMaxReverseWidth

	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestCommandsE2E(t *testing.T) {
	dir := t.TempDir()
	customTaps := writeFile(t, dir, "custom.taps", `
lfsr Good4  width 4 taps 4, 3;
lfsr Short4 width 4 taps 4, 2;   -- cycles after 6 steps
`)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "list built-in",
			args: []string{"list"},
			wantContain: []string{
				"Galois2 ",
				"Galois32",
				"0xA3000000 0x46000001 4294967295",
				"0x0000B400 0x00016801 65535",
			},
		},
		{
			name:        "list custom",
			args:        []string{"list", "--taps", customTaps},
			wantContain: []string{"Good4", "Short4"},
		},
		{
			name: "step up",
			args: []string{"step", "Galois16", "--count", "11"},
			wantContain: []string{
				"         0  0x0001  0000000000000001",
				"        10  0x005A  0000000001011010",
			},
		},
		{
			name:        "step from position",
			args:        []string{"step", "galois32", "--start", "17", "--count", "1"},
			wantContain: []string{"17  0x0000A300"},
		},
		{
			name: "step down wraps",
			args: []string{"step", "Galois8", "--down", "--count", "2"},
			wantContain: []string{
				"         0  0x01",
				"       254  ",
			},
		},
		{
			name:    "step unknown register",
			args:    []string{"step", "Fibonacci7"},
			wantErr: true,
		},
		{
			name:    "step negative count",
			args:    []string{"step", "Galois8", "--count", "-1"},
			wantErr: true,
		},
		{
			name:        "verify built-in",
			args:        []string{"verify", "--quiet", "Galois8", "Galois16"},
			wantContain: []string{"Galois8      ok      255 states", "Galois16     ok      65535 states"},
		},
		{
			name:        "verify good custom",
			args:        []string{"verify", "--quiet", "--taps", customTaps, "Good4"},
			wantContain: []string{"Good4        ok      15 states"},
		},
		{
			name:    "verify short cycle",
			args:    []string{"verify", "--quiet", "--taps", customTaps},
			wantErr: true,
		},
		{
			name:    "missing taps file",
			args:    []string{"list", "--taps", filepath.Join(dir, "missing.taps")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)

			// Check error expectation
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none\nOutput: %s", output)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestGenAndLookupE2E(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "build")
	defs := writeFile(t, dir, "tables.taps", `
# Tables for the lookup tests.
lfsr Galois16 width 16 taps 16, 14, 13, 11;
lfsr Galois8  width 8  length 255 taps 8, 6, 5, 4;
search win16 using Galois16 from 10 to 20 step 5;
direct rev16 using Galois16;
direct rev8  using Galois8;
`)

	output, err := execute(t, "gen", defs, "--out", out, "--npy", "--quiet")
	if err != nil {
		t.Fatalf("gen failed: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"win16.lfsrtab", "2 samples", "rev16.lfsrtab", "65536 slots", "rev8.npy"} {
		if !strings.Contains(output, want) {
			t.Errorf("gen output missing %q\nGot:\n%s", want, output)
		}
	}
	for _, name := range []string{"win16.lfsrtab", "rev16.lfsrtab", "rev8.lfsrtab", "rev8.npy", "rev16.npy"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	g16 := galois.MustWidth(16)
	state := func(pos uint64) string { return fmt.Sprintf("%#x", g16.StateAt(pos)) }

	tests := []struct {
		name  string
		table string
		state string
		want  string
	}{
		{"search before window", "win16.lfsrtab", state(9), "absent"},
		{"search window start", "win16.lfsrtab", state(10), "10"},
		{"search inside window", "win16.lfsrtab", state(17), "17"},
		{"search window end", "win16.lfsrtab", state(20), "absent"},
		{"direct position", "rev16.lfsrtab", "0x5a", "10"},
		{"direct last position", "rev16.lfsrtab", state(65534), "65534"},
		{"direct lock-up", "rev16.lfsrtab", "0", "absent"},
		{"direct too wide", "rev8.lfsrtab", "0x1ff", "absent"},
		{"direct binary", "rev8.lfsrtab", "0b1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, "lookup", filepath.Join(out, tt.table), tt.state)
			if err != nil {
				t.Fatalf("lookup failed: %v\nOutput: %s", err, output)
			}
			if got := strings.TrimSpace(output); got != tt.want {
				t.Errorf("lookup %s %s = %q, want %q", tt.table, tt.state, got, tt.want)
			}
		})
	}

	if _, err := execute(t, "lookup", filepath.Join(out, "rev16.lfsrtab"), "not-a-state"); err == nil {
		t.Error("Expected error for malformed state")
	}
	if _, err := execute(t, "lookup", defs, "1"); err == nil {
		t.Error("Expected error for a file that is not a table")
	}
}

func TestGenRejectsNonMaximalTaps(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "bad.taps", `
lfsr Short4 width 4 taps 4, 2;
direct bad using Short4;
`)

	if _, err := execute(t, "gen", defs, "--out", dir, "--quiet"); err == nil {
		t.Fatal("Expected error for non-maximal taps")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.lfsrtab")); !os.IsNotExist(err) {
		t.Errorf("table written for non-maximal taps: %v", err)
	}
}

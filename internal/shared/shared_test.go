package shared

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHelpers(t *testing.T) {
	t.Run("GenerateState", func(t *testing.T) {
		a, err := GenerateState()
		if err != nil {
			t.Fatalf("GenerateState failed: %v", err)
		}
		b, _ := GenerateState()

		if a == "" || a == b {
			t.Errorf("expected distinct non-empty states, got %q and %q", a, b)
		}
		if strings.ContainsAny(a, "+/=") {
			t.Errorf("state should be URL safe, got %q", a)
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		if id := GenerateID(); len(id) != 36 {
			t.Errorf("expected uuid string, got %q", id)
		}
	})

	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.DebugLevel)

		WithLogger(logger, "playlist", "PL1").Debug("hello")

		if !strings.Contains(buf.String(), "playlist=PL1") {
			t.Errorf("expected key-value pair in output, got %q", buf.String())
		}
	})

	t.Run("OpenBrowser", func(t *testing.T) {
		origRuntime, origStart := getRuntime, startCmd
		defer func() { getRuntime, startCmd = origRuntime, origStart }()

		var started *exec.Cmd
		startCmd = func(cmd *exec.Cmd) error {
			started = cmd
			return nil
		}

		tc := []struct {
			goos string
			bin  string
		}{
			{"darwin", "open"},
			{"linux", "xdg-open"},
			{"windows", "rundll32"},
		}
		for _, tt := range tc {
			getRuntime = func() string { return tt.goos }
			if err := OpenBrowser("https://example.com"); err != nil {
				t.Fatalf("%s: unexpected error %v", tt.goos, err)
			}
			if !strings.HasSuffix(started.Path, tt.bin) && started.Args[0] != tt.bin {
				t.Errorf("%s: expected %s, got %s", tt.goos, tt.bin, started.Path)
			}
			if started.Args[len(started.Args)-1] != "https://example.com" {
				t.Errorf("%s: expected url as last argument, got %v", tt.goos, started.Args)
			}
		}

		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}

		getRuntime = func() string { return "linux" }
		startCmd = func(*exec.Cmd) error { return errors.New("no display") }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error when the opener fails to start")
		}
	})
}

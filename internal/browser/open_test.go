package browser

import (
	"runtime"
	"testing"
)

func TestOpenSupported(t *testing.T) {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
	default:
		t.Skipf("Unsupported platform: %s", runtime.GOOS)
	}

	cmd, err := Command("https://tapedeck.app/?mix=abc")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if got := cmd.Args[len(cmd.Args)-1]; got != "https://tapedeck.app/?mix=abc" {
		t.Errorf("last arg = %q, want the url", got)
	}
}

package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var (
	getRuntime = func() string { return runtime.GOOS }
	startCmd   = func(cmd *exec.Cmd) error { return cmd.Start() }
)

// OpenBrowser asks the desktop to open url in the default browser.
//
// It returns once the opener process has started; it does not wait for the page to load.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch rt := getRuntime(); rt {
	case "darwin":
		name = "open"
	case "linux", "freebsd", "openbsd":
		name = "xdg-open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := startCmd(exec.Command(name, append(args, url)...)); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

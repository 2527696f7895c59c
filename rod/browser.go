package rod

import (
	"context"
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// LookBrowser reports the Chrome or Chromium binary tier 3 would launch.
// An explicit bin must exist on disk; otherwise the usual install locations
// and PATH are searched. It never downloads a browser.
func LookBrowser(bin string) (string, bool) {
	if bin != "" {
		info, err := os.Stat(bin)
		if err != nil || info.IsDir() {
			return "", false
		}
		return bin, true
	}
	return launcher.LookPath()
}

// session is one launched browser process and its CDP connection.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// launch starts a headless browser from bin with flags that keep it stable
// in containers and less obviously automated.
func launch(ctx context.Context, bin string) (*session, error) {
	l := launcher.New().
		Context(ctx).
		Bin(bin).
		NoSandbox(true).
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &session{browser: browser, launcher: l}, nil
}

// pid returns the launcher process ID, or 0 when nothing was launched.
func (s *session) pid() int {
	if s == nil || s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}

// close shuts down the browser and kills the launcher process. It uses the
// browser's own context so cleanup still runs after a request deadline.
func (s *session) close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedURL is returned for URLs that are not http(s)
var ErrUnsupportedURL = errors.New("only http and https URLs can be opened")

// launchPath defines a single way to open a URL
type launchPath struct {
	command string
	args    []string // Arguments placed before the URL
}

// defaultOpeners lists the system handlers to try for each platform, in order
var defaultOpeners = map[string][]launchPath{
	"darwin":  {{command: "open"}},
	"linux":   {{command: "xdg-open"}, {command: "gio", args: []string{"open"}}, {command: "sensible-browser"}},
	"windows": {{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}},
}

// Launcher opens poster URLs in an external viewer
type Launcher struct {
	command string   // configured opener command, empty for system default
	args    []string // additional arguments for the opener
	logger  *slog.Logger

	// Seams for tests
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a new Launcher.
// command may include arguments, e.g. "firefox --new-tab".
func NewLauncher(command string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	fields := strings.Fields(command)
	l := &Launcher{
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
	if len(fields) > 0 {
		l.command = fields[0]
		l.args = fields[1:]
	}
	return l
}

// startDetached starts a command without waiting for it to exit
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens rawURL in the configured opener or the system default
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	target := u.String()

	// Tier 1: User configured a specific opener
	if l.command != "" {
		args := append(append([]string{}, l.args...), target)
		l.logger.Info("opening with configured command", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: Platform handlers in order
	paths, ok := defaultOpeners[runtime.GOOS]
	if !ok {
		paths = defaultOpeners["linux"]
	}
	for _, lp := range paths {
		if _, err := l.lookPath(lp.command); err != nil {
			l.logger.Debug("opener not available", "command", lp.command, "error", err)
			continue
		}
		args := append(append([]string{}, lp.args...), target)
		l.logger.Info("opening with system default", "os", runtime.GOOS, "command", lp.command, "url", target)
		return l.start(lp.command, args...)
	}

	return fmt.Errorf("no URL opener found for %s", runtime.GOOS)
}

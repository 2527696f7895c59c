package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webread"
	"github.com/fwojciec/webread/rod"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// LookBrowser finds the browser binary for tier 3. Set before calling Run().
	LookBrowser func(bin string) (string, bool)

	// Tiers replaces the tier list built from flags. Used for end-to-end testing.
	Tiers []webread.TierFetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		LookBrowser: rod.LookBrowser,
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL     string `arg:"" required:"" help:"Absolute http(s) URL to read"`
	Timeout int    `arg:"" optional:"" default:"20" help:"Per-tier timeout in seconds"`

	Format         string `short:"f" enum:"text,markdown" default:"text" help:"Output format for HTML tiers (text, markdown)"`
	Extractor      string `short:"e" enum:"main,trafilatura,readability" default:"main" help:"Main-content extractor for HTML tiers (main, trafilatura, readability)"`
	ReaderEndpoint string `env:"WEBREAD_READER_ENDPOINT" default:"https://r.jina.ai/" help:"Remote rendering proxy prefix for tier 2"`
	BrowserBin     string `env:"WEBREAD_BROWSER_BIN" help:"Chrome or Chromium binary for tier 3 (default: search the system)"`
	NoBrowser      bool   `help:"Never use the local browser tier"`
	Debug          bool   `help:"Log every tier call to stderr"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webread"),
		kong.Description("Fetch the readable content of a web page, escalating from plain HTTP to a rendering proxy to a local headless browser."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return webread.Errorf(webread.EINVALID, "no URL provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return webread.Errorf(webread.EINVALID, "%v", err)
	}

	if cli.Timeout <= 0 {
		return webread.Errorf(webread.EINVALID, "timeout must be a positive number of seconds, got %d", cli.Timeout)
	}
	if int64(cli.Timeout) > maxTimeoutSeconds {
		return webread.Errorf(webread.EINVALID, "timeout must be at most %d seconds, got %d", maxTimeoutSeconds, cli.Timeout)
	}
	req := webread.NewRequest(cli.URL)
	req.Timeout = secondsToDuration(cli.Timeout)
	if err := req.Validate(); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, cli.Debug),
	}

	if m.Tiers != nil {
		deps.Tiers = m.Tiers
	} else {
		w, err := m.wire(cli, deps)
		if err != nil {
			return err
		}
		defer w.Close()
		deps.Tiers = w.tiers
	}

	cmd := &FetchCmd{Request: req}
	return cmd.Run(deps)
}

// newLogger returns a text logger on stderr tagged with a request id when
// debug is set, and a logger that discards everything otherwise.
func newLogger(stderr io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("request_id", uuid.NewString())
}

// errorText renders err for the terminal, hiding the error struct format.
func errorText(err error) string {
	if code := webread.ErrorCode(err); code != webread.EINTERNAL {
		return "error: " + webread.ErrorMessage(err)
	}
	return "error: " + err.Error()
}

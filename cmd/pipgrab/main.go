package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pipgrab"
	"github.com/fwojciec/pipgrab/extract"
	"github.com/fwojciec/pipgrab/fs"
	"github.com/fwojciec/pipgrab/goquery"
	pghttp "github.com/fwojciec/pipgrab/http"
	"github.com/fwojciec/pipgrab/rod"
	pgslog "github.com/fwojciec/pipgrab/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Service replaces the wired extraction pipeline. Used by end-to-end tests.
	Service pipgrab.Service

	fetcher pipgrab.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases the page fetcher.
func (m *Main) Close() error {
	if m.fetcher != nil {
		return m.fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pipgrab"),
		kong.Description("Extract images, measurements and materials from IKEA product pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pipgrab --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Service = m.Service
	if deps.Service == nil {
		svc, err := m.wireService(cli, deps.Logger, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		deps.Service = svc
	}

	return kongCtx.Run(deps)
}

// wireService assembles the extraction pipeline from the global flags.
func (m *Main) wireService(cli *CLI, logger *slog.Logger, stderr io.Writer) (pipgrab.Service, error) {
	if cli.Browser {
		fetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithUserAgent(pghttp.DefaultUserAgent),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.fetcher = fetcher
	} else {
		m.fetcher = pghttp.NewFetcher(pghttp.WithTimeout(cli.Timeout))
	}

	svc := &extract.Service{
		Fetcher:     pgslog.NewLoggingFetcher(m.fetcher, logger),
		Extractor:   goquery.NewExtractor(),
		Downloader:  pgslog.NewLoggingDownloader(pghttp.NewDownloader(fs.NewImageWriter(), pghttp.WithTimeout(cli.Timeout)), logger),
		Logger:      logger,
		OutputRoot:  cli.OutputRoot,
		Concurrency: cli.Concurrency,
	}
	if cli.Rate > 0 {
		svc.RateLimiter = extract.NewDomainLimiter(cli.Rate)
	}

	return pgslog.NewLoggingService(svc, logger), nil
}

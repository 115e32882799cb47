package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pipgrab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Service pipgrab.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout     time.Duration `default:"30s" env:"PIPGRAB_TIMEOUT" help:"Timeout for page and image requests"`
	Concurrency int           `default:"1" env:"PIPGRAB_CONCURRENCY" help:"Concurrent image downloads"`
	Browser     bool          `help:"Render pages with headless Chrome"`
	OutputRoot  string        `default:"output" env:"PIPGRAB_OUTPUT_ROOT" help:"Parent directory for per-request image folders"`
	Rate        float64       `default:"0" env:"PIPGRAB_RATE" help:"Image downloads per second per host (0 = unlimited)"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`

	Extract ExtractCmd `cmd:"" help:"Extract a product page"`
	Serve   ServeCmd   `cmd:"" help:"Serve the extraction HTTP API"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL        string `arg:"" help:"Product page URL"`
	NoDownload bool   `help:"Skip image downloads"`
	Output     string `short:"o" help:"Directory for downloaded images"`
	Format     string `default:"json" enum:"json,markdown" help:"Output format (json, markdown)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8000" env:"PIPGRAB_ADDR" help:"Listen address"`
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/akarpinski/prosecheck"
	"github.com/akarpinski/prosecheck/bloom"
	"github.com/akarpinski/prosecheck/gemini"
	"github.com/akarpinski/prosecheck/htmltomarkdown"
	pchttp "github.com/akarpinski/prosecheck/http"
	pcslog "github.com/akarpinski/prosecheck/slog"
	"github.com/akarpinski/prosecheck/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, prosecheck.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `short:"u" help:"Correction service URL" default:"http://localhost:8090/check"`
	Gemini      bool          `help:"Use Gemini as the correction service (requires GEMINI_API_KEY)"`
	Language    string        `short:"l" default:"en" help:"Document language"`
	Services    []string      `short:"s" default:"grammar,spelling" help:"Correction services to apply"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Correction service timeout"`
	RateLimit   float64       `help:"Correction service requests per second (0 = unlimited)"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent file limit"`
	CachePath   string        `help:"Path to a persistent result cache (SQLite); empty disables persistence"`
	Verbose     bool          `short:"v" help:"Log correction service calls"`
	Files       []string      `arg:"" required:"" help:"Markdown or HTML files to check"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("prosecheck"),
		kong.Description("Check markdown and HTML files for grammar and spelling problems"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Wire the checker backend.
	var checker prosecheck.Checker
	if cli.Gemini {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		})
		if err != nil {
			return fmt.Errorf("failed to create gemini client: %w", err)
		}
		checker = gemini.NewChecker(client)
	} else {
		opts := []pchttp.Option{pchttp.WithTimeout(cli.Timeout)}
		if cli.RateLimit > 0 {
			opts = append(opts, pchttp.WithRateLimit(cli.RateLimit))
		}
		checker = pchttp.NewChecker(cli.URL, opts...)
	}

	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		checker = pcslog.NewLoggingChecker(checker, logger)
	}

	// Optional persistent result store with a seen-sentence pre-filter.
	var store prosecheck.ResultStore
	var seen prosecheck.SeenFilter
	if cli.CachePath != "" {
		db := sqlite.NewDB(cli.CachePath)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()

		resultStore := sqlite.NewResultStore(db)
		filter := bloom.NewFilter(100000, 0.01)

		// Seed the filter from the store so results persisted by earlier
		// runs are found again; a fresh filter would report every stored
		// sentence as unseen.
		sentences, err := resultStore.Sentences(ctx)
		if err != nil {
			return err
		}
		for _, s := range sentences {
			filter.Add(s)
		}

		store = resultStore
		seen = filter
	}

	services := make([]prosecheck.Service, 0, len(cli.Services))
	for _, s := range cli.Services {
		services = append(services, prosecheck.Service(s))
	}

	cmd := &CheckCmd{
		Checker:     checker,
		Converter:   htmltomarkdown.NewConverter(),
		Store:       store,
		Seen:        seen,
		Language:    prosecheck.Language(cli.Language),
		Services:    services,
		Concurrency: cli.Concurrency,
		Stdout:      stdout,
	}

	return cmd.Run(ctx, cli.Files)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/time/rate"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/browse"
	"github.com/epollo/epollo/fs"
	"github.com/epollo/epollo/goquery"
	epollohttp "github.com/epollo/epollo/http"
	"github.com/epollo/epollo/htmltomarkdown"
	"github.com/epollo/epollo/ollama"
	"github.com/epollo/epollo/readability"
	"github.com/epollo/epollo/rod"
	epolloslog "github.com/epollo/epollo/slog"
	"github.com/epollo/epollo/sqlite"
	"github.com/epollo/epollo/trafilatura"
	"github.com/epollo/epollo/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file path. Set before calling Run().
	ConfigPath string

	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the visit history service.
	DB *sqlite.DB

	// Services for end-to-end testing.
	VisitService epollo.VisitService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		DBPath:     defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("epollo"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'epollo --help' to see available commands")
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

	// A malformed config file is a warning, not a failure: the loader
	// returns usable defaults alongside the error.
	cfg, err := yaml.LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %s, using defaults\n", epollo.ErrorMessage(err))
	}
	deps.Config = cfg

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Visit history lives in SQLite; only the commands that read or
	// write it pay for opening the database.
	if cmd == "browse" || cmd == "summary" || cmd == "history" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set EPOLLO_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.VisitService = sqlite.NewVisitService(m.DB)
		deps.Visits = m.VisitService
	}

	var fetcher epollo.PageFetcher
	if cmd == "browse" || cmd == "summary" || cmd == "digest" {
		fetcher = epolloslog.NewLoggingFetcher(newFetcher(cfg), logger)
		defer fetcher.Close()
	}

	var gen epollo.Generator
	if cmd == "browse" || cmd == "summary" || cmd == "digest" {
		gen = epolloslog.NewLoggingGenerator(
			ollama.NewClient(cfg.Ollama.Model, ollama.WithBaseURL(cfg.Ollama.APIURL)), logger)

		// Probe the model up front so an unreachable Ollama is
		// reported before any page work starts. Browsing still
		// proceeds; filtering and summaries degrade.
		if err := gen.Ping(ctx); err != nil {
			fmt.Fprintf(stderr, "warning: ollama is not available at %s, content filtering and summaries will not work: %s\n",
				cfg.Ollama.APIURL, epollo.ErrorMessage(err))
		}
	}

	if cmd == "browse" || cmd == "summary" {
		loaderCfg := cfg
		if cmd == "summary" {
			loaderCfg.Display.SummaryView = true
		} else {
			if cli.Browse.NoFilter {
				loaderCfg.Filtering.Enabled = false
			}
			if cli.Browse.NoMedia {
				loaderCfg.Display.RemoveMedia = true
			}
		}

		deps.Loader = &browse.Loader{
			Fetcher: fetcher,
			Media:   goquery.NewMediaStripper(),
			Filter:  ollama.NewFilter(gen),
			Summaries: &browse.SummaryPipeline{
				Summarizer: ollama.NewSummarizer(gen),
				Limiter:    rate.NewLimiter(rate.Limit(2), 1),
			},
			Visits: deps.Visits,
			Config: loaderCfg,
		}
	}

	if cmd == "digest" {
		deps.Digester = ollama.NewDigester(gen)
		deps.Reader = &browse.Reader{
			Fetcher: fetcher,
			Extractor: &browse.FallbackExtractor{
				Primary:  trafilatura.NewExtractor(),
				Fallback: readability.NewExtractor(),
			},
			Converter: htmltomarkdown.NewConverter(),
			Digester:  deps.Digester,
		}
	}

	if cmd == "screenshot" || cmd == "screenshots" || cmd == "headlines" {
		renderer, err := rod.NewRenderer()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer renderer.Close()

		deps.Renderer = epolloslog.NewLoggingRenderer(renderer, logger)
	}

	if cmd == "screenshots" {
		deps.Sitemaps = epolloslog.NewLoggingSitemapService(
			epollohttp.NewSitemapService(nil), logger)
		deps.Store = fs.NewScreenshotStore(cli.Screenshots.Output)
	}
	if cmd == "screenshot" {
		deps.Store = fs.NewScreenshotStore(cli.Screenshot.Output)
	}

	if cmd == "ocr" || cmd == "headlines" {
		vision := ollama.NewVision(
			ollama.NewClient(cfg.Ollama.VisionModel, ollama.WithBaseURL(cfg.Ollama.APIURL)))
		deps.Headlines = vision
		deps.OCR = ollama.NewOCR(vision)
	}

	return kongCtx.Run(deps)
}

func newFetcher(cfg epollo.Config) *epollohttp.Fetcher {
	return epollohttp.NewFetcher(
		epollohttp.WithTimeout(cfg.Fetch.Timeout),
		epollohttp.WithMaxBytes(cfg.Fetch.MaxBytes),
	)
}

func defaultConfigPath() string {
	if path := os.Getenv("EPOLLO_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".epollo", "config.yaml")
}

func defaultDBPath() string {
	if path := os.Getenv("EPOLLO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "epollo.db"
	}
	dir := filepath.Join(home, ".epollo")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "epollo.db")
}

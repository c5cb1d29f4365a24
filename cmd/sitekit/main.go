package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/blog"
	"github.com/fwojciec/sitekit/fs"
	"github.com/fwojciec/sitekit/goquery"
	"github.com/fwojciec/sitekit/htmltomarkdown"
	sitekithttp "github.com/fwojciec/sitekit/http"
	"github.com/fwojciec/sitekit/jsx"
	"github.com/fwojciec/sitekit/readability"
	"github.com/fwojciec/sitekit/rebuild"
	"github.com/fwojciec/sitekit/rewrite"
	"github.com/fwojciec/sitekit/rod"
	"github.com/fwojciec/sitekit/scrape"
	sitekitslog "github.com/fwojciec/sitekit/slog"
	"github.com/fwojciec/sitekit/sqlite"
	"github.com/fwojciec/sitekit/trafilatura"
	"github.com/fwojciec/sitekit/vercel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// closers are released by Close in reverse order.
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitekit"),
		kong.Description("Migrate a small business website to a statically generated site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitekit --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	config, err := ReadConfigFile(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", cli.Config, err)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, cli.Debug),
		Config: config,
	}
	defer m.Close()

	if err := m.wire(commandName(kongCtx.Command()), cli, deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire sets up the services the named command depends on.
func (m *Main) wire(cmd string, cli *CLI, deps *Dependencies) error {
	switch cmd {
	case "scrape":
		return m.wireScrape(cli, deps)
	case "rebuild", "convert":
		deps.Pipeline = newPipeline(deps)
	case "rewrite":
		return wireRewrite(deps)
	case "admin":
		if err := m.openDB(cli.DB, deps); err != nil {
			return err
		}
		deps.Admins = sqlite.NewAdminService(m.DB)
	case "posts":
		if err := m.openDB(cli.DB, deps); err != nil {
			return err
		}
		deps.Posts = sqlite.NewPostService(m.DB)
		deps.Importer = newImporter(deps)
		deps.Exporter = fs.NewPostExporter(deps.Config.Site.ContentDir)
	case "deploy", "domains", "alias", "dns":
		return wireHosting(cli, deps)
	}
	return nil
}

func (m *Main) wireScrape(cli *CLI, deps *Dependencies) error {
	config := deps.Config
	timeout, _ := config.ScrapeTimeout()
	interval, _ := config.ScrapeInterval()

	var fetcher sitekit.Fetcher
	if cli.Scrape.Browser || config.Scrape.Browser {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, rodFetcher)
		fetcher = rodFetcher
	} else {
		fetcher = sitekithttp.NewFetcher(sitekithttp.WithTimeout(timeout))
	}

	deps.Scraper = &scrape.Scraper{
		Sitemaps:    sitekitslog.NewLoggingSitemapService(sitekithttp.NewSitemapService(nil), deps.Logger),
		Fetcher:     rod.NewLoggingFetcher(fetcher, deps.Logger),
		Links:       goquery.NewLinkSelector(),
		RateLimiter: scrape.NewDomainLimiter(interval),
		Logger:      deps.Logger,
		MaxPages:    config.Scrape.MaxPages,
		RetryDelays: config.ScrapeRetryDelays(),
	}
	deps.Snapshot = fs.NewSnapshotStore(config.Site.SnapshotDir)
	return nil
}

func newPipeline(deps *Dependencies) *rebuild.Pipeline {
	config := deps.Config
	opts := []goquery.Option{
		goquery.WithSelectors(config.Extract.Selectors),
		goquery.WithErrorMarkers(config.Extract.ErrorMarkers),
		goquery.WithMinTextLength(config.Extract.MinTextLength),
	}
	if config.Extract.PlatformDetection {
		detector := sitekitslog.NewLoggingPlatformDetector(goquery.NewDetector(), deps.Logger)
		opts = append(opts, goquery.WithPlatformDetection(detector))
	}
	extractor := sitekitslog.NewLoggingContentExtractor(goquery.NewContentExtractor(opts...), deps.Logger)

	return &rebuild.Pipeline{
		Extractor: extractor,
		Emitter:   fs.NewPageWriter(config.Site.AppDir, jsx.NewRenderer(config.Site.BaseURL)),
		Logger:    deps.Logger,
		Exclude:   config.Rebuild.Exclude,
	}
}

func wireRewrite(deps *Dependencies) error {
	rules, err := deps.Config.RewriteRules()
	if err != nil {
		return err
	}
	rewriter, err := rewrite.NewRewriter(rules)
	if err != nil {
		return err
	}
	if len(deps.Config.Rewrite.Extensions) > 0 {
		rewriter.Extensions = deps.Config.Rewrite.Extensions
	}
	if len(deps.Config.Rewrite.SkipDirs) > 0 {
		rewriter.SkipDirs = deps.Config.Rewrite.SkipDirs
	}
	rewriter.Logger = deps.Logger
	deps.Rewriter = rewriter
	return nil
}

func newImporter(deps *Dependencies) *blog.Importer {
	var articles sitekit.ArticleExtractor = trafilatura.NewExtractor()
	if deps.Config.Blog.Extractor == ExtractorReadability {
		articles = readability.NewExtractor()
	}
	return &blog.Importer{
		Articles:      articles,
		Converter:     htmltomarkdown.NewConverter(),
		Posts:         deps.Posts,
		Logger:        deps.Logger,
		Prefix:        deps.Config.Blog.Prefix,
		SourceBaseURL: deps.Config.Site.SourceURL,
	}
}

func wireHosting(cli *CLI, deps *Dependencies) error {
	if cli.VercelToken == "" {
		fmt.Fprintln(deps.Stderr, "VERCEL_TOKEN environment variable not set. Create a token at https://vercel.com/account/tokens")
		return sitekit.Errorf(sitekit.EUNAUTHORIZED, "VERCEL_TOKEN not set")
	}
	client, err := vercel.NewClient(cli.VercelToken, deps.Config.Vercel.Project, vercel.WithTeamID(cli.VercelTeamID))
	if err != nil {
		if sitekit.ErrorCode(err) == sitekit.EINVALID {
			fmt.Fprintln(deps.Stderr, "Hint: Set vercel.project in the config file")
		}
		return err
	}
	deps.Hosting = sitekitslog.NewLoggingHostingService(client, deps.Logger)
	return nil
}

func (m *Main) openDB(path string, deps *Dependencies) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set SITEKIT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.closers = append(m.closers, m.DB)
	return nil
}

// commandName returns the top-level command of a kong command path such as
// "admin create <username>".
func commandName(path string) string {
	name, _, _ := strings.Cut(path, " ")
	return name
}

// newLogger returns a text logger on w. Without debug only warnings and
// errors are written.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

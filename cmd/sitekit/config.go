package main

import (
	"os"
	"regexp"
	"time"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/blog"
	"github.com/fwojciec/sitekit/goquery"
	"github.com/fwojciec/sitekit/rewrite"
	"github.com/fwojciec/sitekit/scrape"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigPath is the config file read when no path is given.
const DefaultConfigPath = "sitekit.toml"

// Config is the project configuration read from sitekit.toml. Business
// facts about the site live here; secrets come from the environment.
type Config struct {
	Site    SiteConfig    `toml:"site"`
	Scrape  ScrapeConfig  `toml:"scrape"`
	Extract ExtractConfig `toml:"extract"`
	Rebuild RebuildConfig `toml:"rebuild"`
	Blog    BlogConfig    `toml:"blog"`
	Rewrite RewriteConfig `toml:"rewrite"`
	Vercel  VercelConfig  `toml:"vercel"`
}

// SiteConfig locates the old site, the new site and the project directories.
type SiteConfig struct {
	SourceURL   string `toml:"source_url"`
	BaseURL     string `toml:"base_url"`
	SnapshotDir string `toml:"snapshot_dir"`
	AppDir      string `toml:"app_dir"`
	ContentDir  string `toml:"content_dir"`
	ProjectDir  string `toml:"project_dir"`
}

// ScrapeConfig controls how the old site is snapshotted.
type ScrapeConfig struct {
	MaxPages int      `toml:"max_pages"`
	Interval string   `toml:"interval"`
	Timeout  string   `toml:"timeout"`
	Browser  bool     `toml:"browser"`
	Retry    bool     `toml:"retry"`
	Include  []string `toml:"include"`
	Exclude  []string `toml:"exclude"`
}

// ExtractConfig controls main content detection.
type ExtractConfig struct {
	Selectors         []string `toml:"selectors"`
	ErrorMarkers      []string `toml:"error_markers"`
	MinTextLength     int      `toml:"min_text_length"`
	PlatformDetection bool     `toml:"platform_detection"`
}

// RebuildConfig controls page generation.
type RebuildConfig struct {
	Exclude []string `toml:"exclude"`
}

// BlogConfig controls the blog import.
type BlogConfig struct {
	Prefix    string `toml:"prefix"`
	Extractor string `toml:"extractor"`
}

// RewriteConfig holds the text replacements applied to the project tree.
type RewriteConfig struct {
	Root       string         `toml:"root"`
	Extensions []string       `toml:"extensions"`
	SkipDirs   []string       `toml:"skip_dirs"`
	Phone      PhoneConfig    `toml:"phone"`
	Domain     DomainConfig   `toml:"domain"`
	Rules      []rewrite.Rule `toml:"rules"`
}

// PhoneConfig replaces an old phone number in every common format.
type PhoneConfig struct {
	Old string `toml:"old"`
	New string `toml:"new"`
}

// DomainConfig replaces links to the old domain with the new base URL.
type DomainConfig struct {
	Old string `toml:"old"`
	New string `toml:"new"`
}

// VercelConfig identifies the hosting project.
type VercelConfig struct {
	Project string `toml:"project"`
}

// Supported blog article extractors.
const (
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// DefaultConfig returns a new instance of Config with defaults set.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			SnapshotDir: "snapshot",
			AppDir:      "app",
			ContentDir:  "content/blog",
			ProjectDir:  ".",
		},
		Scrape: ScrapeConfig{
			MaxPages: scrape.DefaultMaxPages,
			Interval: "1s",
			Timeout:  "15s",
			Retry:    false,
		},
		Extract: ExtractConfig{
			Selectors:     goquery.DefaultSelectors(),
			ErrorMarkers:  goquery.DefaultErrorMarkers(),
			MinTextLength: goquery.DefaultMinTextLength,
		},
		Rebuild: RebuildConfig{
			Exclude: []string{blog.DefaultPrefix},
		},
		Blog: BlogConfig{
			Prefix:    blog.DefaultPrefix,
			Extractor: ExtractorTrafilatura,
		},
		Rewrite: RewriteConfig{
			Extensions: rewrite.DefaultExtensions(),
			SkipDirs:   rewrite.DefaultSkipDirs(),
		},
	}
}

// ReadConfigFile unmarshals config from filename on top of the defaults.
// A missing file yields the defaults.
func ReadConfigFile(filename string) (Config, error) {
	config := DefaultConfig()
	buf, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return config, err
	}
	if err := toml.Unmarshal(buf, &config); err != nil {
		return config, sitekit.Errorf(sitekit.EINVALID, "parse %s: %v", filename, err)
	}
	return config, config.Validate()
}

// Validate returns an error if the config contains values that would fail
// later, such as unparseable durations or patterns.
func (c *Config) Validate() error {
	if _, err := c.ScrapeInterval(); err != nil {
		return err
	}
	if _, err := c.ScrapeTimeout(); err != nil {
		return err
	}
	if _, err := c.URLFilter(); err != nil {
		return err
	}
	switch c.Blog.Extractor {
	case ExtractorTrafilatura, ExtractorReadability:
	default:
		return sitekit.Errorf(sitekit.EINVALID, "unknown blog extractor %q", c.Blog.Extractor)
	}
	return nil
}

// ScrapeInterval returns the minimum delay between requests to one host.
func (c *Config) ScrapeInterval() (time.Duration, error) {
	return parseDuration("scrape.interval", c.Scrape.Interval)
}

// ScrapeTimeout returns the per-page fetch timeout.
func (c *Config) ScrapeTimeout() (time.Duration, error) {
	return parseDuration("scrape.timeout", c.Scrape.Timeout)
}

// ScrapeRetryDelays returns the delays between fetch attempts. Nil unless
// scrape.retry is set, so each page is fetched once by default.
func (c *Config) ScrapeRetryDelays() []time.Duration {
	if !c.Scrape.Retry {
		return nil
	}
	return scrape.DefaultRetryDelays()
}

func parseDuration(key, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, sitekit.Errorf(sitekit.EINVALID, "%s: invalid duration %q", key, value)
	}
	return d, nil
}

// URLFilter compiles the scrape include and exclude patterns.
// Returns nil when there are none.
func (c *Config) URLFilter() (*sitekit.URLFilter, error) {
	if len(c.Scrape.Include) == 0 && len(c.Scrape.Exclude) == 0 {
		return nil, nil
	}
	filter := &sitekit.URLFilter{}
	for _, pattern := range c.Scrape.Include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, sitekit.Errorf(sitekit.EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range c.Scrape.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, sitekit.Errorf(sitekit.EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// RewriteRules returns the phone and domain rules followed by the custom
// rules. Returns EINVALID when no replacement is configured.
func (c *Config) RewriteRules() ([]rewrite.Rule, error) {
	var rules []rewrite.Rule
	if c.Rewrite.Phone.Old != "" {
		phone, err := rewrite.PhoneRules(c.Rewrite.Phone.Old, c.Rewrite.Phone.New)
		if err != nil {
			return nil, err
		}
		rules = append(rules, phone...)
	}
	if c.Rewrite.Domain.Old != "" {
		newURL := c.Rewrite.Domain.New
		if newURL == "" {
			newURL = c.Site.BaseURL
		}
		domain, err := rewrite.DomainRules(c.Rewrite.Domain.Old, newURL)
		if err != nil {
			return nil, err
		}
		rules = append(rules, domain...)
	}
	rules = append(rules, c.Rewrite.Rules...)
	if len(rules) == 0 {
		return nil, sitekit.Errorf(sitekit.EINVALID, "no rewrite rules configured")
	}
	return rules, nil
}

// RewriteRoot returns the directory tree the rewriter walks.
func (c *Config) RewriteRoot() string {
	if c.Rewrite.Root != "" {
		return c.Rewrite.Root
	}
	return c.Site.ProjectDir
}

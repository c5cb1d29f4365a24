package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/blog"
	"github.com/fwojciec/sitekit/rebuild"
	"github.com/fwojciec/sitekit/scrape"
)

// Dependencies holds all services and configuration for command execution.
// Main wires only what the selected command needs.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	Scraper  *scrape.Scraper
	Snapshot sitekit.SnapshotStore
	Pipeline *rebuild.Pipeline
	Importer *blog.Importer
	Exporter sitekit.PostExporter
	Rewriter sitekit.Rewriter

	Admins  sitekit.AdminService
	Posts   sitekit.PostService
	Hosting sitekit.HostingService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" env:"SITEKIT_CONFIG" default:"sitekit.toml" help:"Path to the config file"`
	DB     string `env:"SITEKIT_DB" default:"sitekit.db" help:"Path to the site database"`
	Debug  bool   `help:"Log debug output to stderr"`

	Scrape  ScrapeCmd  `cmd:"" help:"Snapshot the old site's pages"`
	Rebuild RebuildCmd `cmd:"" help:"Generate page components from the snapshot"`
	Convert ConvertCmd `cmd:"" help:"Generate the page component for one snapshot file"`
	Rewrite RewriteCmd `cmd:"" help:"Replace phone numbers, domains and custom text across the project"`
	Admin   AdminCmd   `cmd:"" help:"Manage admin accounts"`
	Posts   PostsCmd   `cmd:"" help:"Manage blog posts"`
	Deploy  DeployCmd  `cmd:"" help:"Inspect deployments"`
	Domains DomainsCmd `cmd:"" help:"Manage project domains"`
	Alias   AliasCmd   `cmd:"" help:"Manage deployment aliases"`
	DNS     DNSCmd     `cmd:"" name:"dns" help:"Manage DNS records"`

	// Hosting credentials. Checked only by hosting commands.
	VercelToken  string `name:"vercel-token" env:"VERCEL_TOKEN" hidden:"" help:"Hosting API token"`
	VercelTeamID string `name:"vercel-team" env:"VERCEL_TEAM_ID" hidden:"" help:"Hosting team ID"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string `arg:"" optional:"" help:"Site URL (default: site.source_url)"`
	MaxPages int    `short:"n" help:"Maximum pages to fetch (default: scrape.max_pages)"`
	Browser  bool   `help:"Render pages in a headless browser"`
}

// RebuildCmd is the "rebuild" subcommand.
type RebuildCmd struct {
	Verbose bool `short:"v" help:"Print unchanged pages too"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File  string `arg:"" type:"existingfile" help:"Snapshot HTML file"`
	Route string `arg:"" help:"Route of the generated page, e.g. /about"`
}

// RewriteCmd is the "rewrite" subcommand.
type RewriteCmd struct {
	DryRun bool   `short:"n" help:"Report changes without writing files"`
	Root   string `arg:"" optional:"" help:"Directory to rewrite (default: rewrite.root)"`
}

// AdminCmd groups the admin subcommands.
type AdminCmd struct {
	Create AdminCreateCmd `cmd:"" help:"Create an admin"`
	List   AdminListCmd   `cmd:"" help:"List admins"`
	Passwd AdminPasswdCmd `cmd:"" help:"Change an admin's password"`
	Delete AdminDeleteCmd `cmd:"" help:"Delete an admin"`
}

// AdminCreateCmd is the "admin create" subcommand.
type AdminCreateCmd struct {
	Username string `arg:"" help:"Username"`
	Password string `env:"SITEKIT_ADMIN_PASSWORD" required:"" help:"Password"`
}

// AdminListCmd is the "admin list" subcommand.
type AdminListCmd struct{}

// AdminPasswdCmd is the "admin passwd" subcommand.
type AdminPasswdCmd struct {
	Username string `arg:"" help:"Username"`
	Password string `env:"SITEKIT_ADMIN_PASSWORD" required:"" help:"New password"`
}

// AdminDeleteCmd is the "admin delete" subcommand.
type AdminDeleteCmd struct {
	Username string `arg:"" help:"Username"`
	Force    bool   `help:"Confirm deletion"`
}

// PostsCmd groups the blog post subcommands.
type PostsCmd struct {
	Import PostsImportCmd `cmd:"" help:"Import blog posts from the snapshot"`
	List   PostsListCmd   `cmd:"" help:"List blog posts"`
	Export PostsExportCmd `cmd:"" help:"Write blog posts as Markdown files"`
	Delete PostsDeleteCmd `cmd:"" help:"Delete a blog post"`
}

// PostsImportCmd is the "posts import" subcommand.
type PostsImportCmd struct{}

// PostsListCmd is the "posts list" subcommand.
type PostsListCmd struct {
	Limit  int `short:"n" default:"50" help:"Maximum posts to list"`
	Offset int `help:"Posts to skip"`
}

// PostsExportCmd is the "posts export" subcommand.
type PostsExportCmd struct{}

// PostsDeleteCmd is the "posts delete" subcommand.
type PostsDeleteCmd struct {
	Slug  string `arg:"" help:"Post slug"`
	Force bool   `help:"Confirm deletion"`
}

// DeployCmd groups the deployment subcommands.
type DeployCmd struct {
	List DeployListCmd `cmd:"" help:"List recent deployments"`
}

// DeployListCmd is the "deploy list" subcommand.
type DeployListCmd struct {
	Limit int `short:"n" default:"10" help:"Maximum deployments to list"`
}

// DomainsCmd groups the domain subcommands.
type DomainsCmd struct {
	List   DomainsListCmd   `cmd:"" help:"List project domains"`
	Add    DomainsAddCmd    `cmd:"" help:"Attach domains to the project"`
	Remove DomainsRemoveCmd `cmd:"" help:"Detach a domain from the project"`
}

// DomainsListCmd is the "domains list" subcommand.
type DomainsListCmd struct{}

// DomainsAddCmd is the "domains add" subcommand.
type DomainsAddCmd struct {
	Names []string `arg:"" help:"Domain names"`
}

// DomainsRemoveCmd is the "domains remove" subcommand.
type DomainsRemoveCmd struct {
	Name string `arg:"" help:"Domain name"`
}

// AliasCmd groups the alias subcommands.
type AliasCmd struct {
	List AliasListCmd `cmd:"" help:"List aliases"`
	Set  AliasSetCmd  `cmd:"" help:"Point an alias at a deployment"`
}

// AliasListCmd is the "alias list" subcommand.
type AliasListCmd struct{}

// AliasSetCmd is the "alias set" subcommand.
type AliasSetCmd struct {
	Deployment string `arg:"" help:"Deployment ID"`
	Alias      string `arg:"" help:"Hostname"`
}

// DNSCmd groups the DNS subcommands.
type DNSCmd struct {
	List   DNSListCmd   `cmd:"" help:"List DNS records of a domain"`
	Add    DNSAddCmd    `cmd:"" help:"Add a DNS record"`
	Delete DNSDeleteCmd `cmd:"" help:"Delete a DNS record"`
}

// DNSListCmd is the "dns list" subcommand.
type DNSListCmd struct {
	Domain string `arg:"" help:"Domain name"`
}

// DNSAddCmd is the "dns add" subcommand.
type DNSAddCmd struct {
	Domain string `arg:"" help:"Domain name"`
	Name   string `arg:"" help:"Record name, empty for the apex"`
	Type   string `arg:"" enum:"A,AAAA,ALIAS,CAA,CNAME,MX,TXT,NS" help:"Record type"`
	Value  string `arg:"" help:"Record value"`
	TTL    int    `help:"Time to live in seconds"`
}

// DNSDeleteCmd is the "dns delete" subcommand.
type DNSDeleteCmd struct {
	Domain string `arg:"" help:"Domain name"`
	ID     string `arg:"" help:"Record ID"`
}

package main

import (
	"fmt"

	"github.com/fwojciec/sitekit"
)

// Run executes the deploy list command.
func (c *DeployListCmd) Run(deps *Dependencies) error {
	deployments, err := deps.Hosting.ListDeployments(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	if len(deployments) == 0 {
		fmt.Fprintln(deps.Stdout, "No deployments found.")
		return nil
	}
	for _, d := range deployments {
		target := d.Target
		if target == "" {
			target = "preview"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-10s  %s  %s\n",
			d.ID, d.CreatedAt.Format("2006-01-02 15:04"), target, d.State, d.URL)
	}
	return nil
}

// Run executes the domains list command.
func (c *DomainsListCmd) Run(deps *Dependencies) error {
	domains, err := deps.Hosting.ListDomains(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	if len(domains) == 0 {
		fmt.Fprintln(deps.Stdout, "No domains found. Use 'sitekit domains add' to attach one.")
		return nil
	}
	for _, d := range domains {
		status := "verified"
		if !d.Verified {
			status = "unverified"
		}
		line := fmt.Sprintf("%s  %s", d.Name, status)
		if d.Redirect != "" {
			line += "  -> " + d.Redirect
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}

// Run executes the domains add command. Each domain is attempted; failures
// are reported and the rest are still added.
func (c *DomainsAddCmd) Run(deps *Dependencies) error {
	var failed int
	for _, name := range c.Names {
		domain, err := deps.Hosting.AddDomain(deps.Ctx, name)
		if err != nil {
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", name, sitekit.ErrorMessage(err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "Added domain %s\n", domain.Name)
	}
	if failed == len(c.Names) {
		return sitekit.Errorf(sitekit.EINTERNAL, "no domains added")
	}
	return nil
}

// Run executes the domains remove command.
func (c *DomainsRemoveCmd) Run(deps *Dependencies) error {
	if err := deps.Hosting.RemoveDomain(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed domain %s\n", c.Name)
	return nil
}

// Run executes the alias list command.
func (c *AliasListCmd) Run(deps *Dependencies) error {
	aliases, err := deps.Hosting.ListAliases(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	if len(aliases) == 0 {
		fmt.Fprintln(deps.Stdout, "No aliases found.")
		return nil
	}
	for _, a := range aliases {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", a.Alias, a.DeploymentID)
	}
	return nil
}

// Run executes the alias set command.
func (c *AliasSetCmd) Run(deps *Dependencies) error {
	alias, err := deps.Hosting.SetAlias(deps.Ctx, c.Deployment, c.Alias)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Aliased %s to %s\n", alias.Alias, alias.DeploymentID)
	return nil
}

// Run executes the dns list command.
func (c *DNSListCmd) Run(deps *Dependencies) error {
	records, err := deps.Hosting.ListDNSRecords(deps.Ctx, c.Domain)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No DNS records for %s.\n", c.Domain)
		return nil
	}
	for _, r := range records {
		name := r.Name
		if name == "" {
			name = "@"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-6s %s  %s\n", r.ID, r.Type, name, r.Value)
	}
	return nil
}

// Run executes the dns add command.
func (c *DNSAddCmd) Run(deps *Dependencies) error {
	record := &sitekit.DNSRecord{Name: c.Name, Type: c.Type, Value: c.Value, TTL: c.TTL}
	if err := record.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	if err := deps.Hosting.CreateDNSRecord(deps.Ctx, c.Domain, record); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Added %s record %s (%s)\n", record.Type, c.Domain, record.ID)
	return nil
}

// Run executes the dns delete command.
func (c *DNSDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Hosting.DeleteDNSRecord(deps.Ctx, c.Domain, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted DNS record %s\n", c.ID)
	return nil
}

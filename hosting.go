package sitekit

import (
	"context"
	"time"
)

// Deployment is a build of the site on the hosting provider.
type Deployment struct {
	ID        string    `json:"uid"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	State     string    `json:"state"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"-"`
}

// Domain is a domain attached to the hosting project.
type Domain struct {
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	Redirect string `json:"redirect,omitempty"`
}

// Alias maps a hostname to a deployment.
type Alias struct {
	ID           string `json:"uid"`
	Alias        string `json:"alias"`
	DeploymentID string `json:"deploymentId"`
}

// DNSRecord is a DNS record managed by the hosting provider.
type DNSRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	TTL   int    `json:"ttl,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *DNSRecord) Validate() error {
	switch r.Type {
	case "A", "AAAA", "ALIAS", "CAA", "CNAME", "MX", "TXT", "NS":
	default:
		return Errorf(EINVALID, "unsupported DNS record type %q", r.Type)
	}
	if r.Value == "" {
		return Errorf(EINVALID, "DNS record value required")
	}
	return nil
}

// HostingService drives the hosting provider's deployment, domain, alias and
// DNS endpoints. Calls are single request/response with no retries.
type HostingService interface {
	// ListDeployments returns the project's most recent deployments, newest first.
	ListDeployments(ctx context.Context, limit int) ([]*Deployment, error)

	// ListDomains returns the domains attached to the project.
	ListDomains(ctx context.Context) ([]*Domain, error)

	// AddDomain attaches a domain to the project.
	// Returns ECONFLICT if the domain is already in use.
	AddDomain(ctx context.Context, name string) (*Domain, error)

	// RemoveDomain detaches a domain from the project.
	// Returns ENOTFOUND if the domain is not attached.
	RemoveDomain(ctx context.Context, name string) error

	// ListAliases returns the aliases of the account or team.
	ListAliases(ctx context.Context) ([]*Alias, error)

	// SetAlias points alias at a deployment.
	SetAlias(ctx context.Context, deploymentID, alias string) (*Alias, error)

	// ListDNSRecords returns the DNS records of a domain.
	ListDNSRecords(ctx context.Context, domain string) ([]*DNSRecord, error)

	// CreateDNSRecord adds a DNS record to a domain and sets its ID.
	CreateDNSRecord(ctx context.Context, domain string, record *DNSRecord) error

	// DeleteDNSRecord removes a DNS record from a domain.
	DeleteDNSRecord(ctx context.Context, domain, recordID string) error
}

// Package vercel implements sitekit.HostingService against the Vercel REST API.
package vercel

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/sitekit"
	"github.com/go-resty/resty/v2"
)

var _ sitekit.HostingService = (*Client)(nil)

// DefaultBaseURL is the Vercel API endpoint.
const DefaultBaseURL = "https://api.vercel.com"

// DefaultTimeout bounds every API request.
const DefaultTimeout = 30 * time.Second

// Client is a Vercel API client scoped to a single project.
type Client struct {
	client  *resty.Client
	project string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.client.SetBaseURL(baseURL)
	}
}

// WithTeamID scopes every request to a team.
func WithTeamID(teamID string) Option {
	return func(c *Client) {
		if teamID != "" {
			c.client.SetQueryParam("teamId", teamID)
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.SetTimeout(d)
	}
}

// NewClient creates a client authenticated with token for project, which
// may be a project ID or name.
func NewClient(token, project string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, sitekit.Errorf(sitekit.EUNAUTHORIZED, "API token required")
	}
	if project == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "project required")
	}

	client := resty.New()
	client.SetBaseURL(DefaultBaseURL)
	client.SetAuthToken(token)
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(DefaultTimeout)

	c := &Client{client: client, project: project}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do sends the request and maps non-2xx responses to domain errors.
func (c *Client) do(ctx context.Context, method, path string, req func(*resty.Request)) error {
	var apiErr apiError
	r := c.client.R().SetContext(ctx).SetError(&apiErr)
	if req != nil {
		req(r)
	}

	res, err := r.Execute(method, path)
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}

	msg := apiErr.Error.Message
	if msg == "" {
		msg = http.StatusText(res.StatusCode())
	}
	if apiErr.Error.Code != "" {
		msg = apiErr.Error.Code + ": " + msg
	}
	return sitekit.Errorf(errorCode(res.StatusCode()), "%s %s: %s", method, path, msg)
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return sitekit.EINVALID
	case http.StatusUnauthorized, http.StatusForbidden:
		return sitekit.EUNAUTHORIZED
	case http.StatusNotFound:
		return sitekit.ENOTFOUND
	case http.StatusConflict:
		return sitekit.ECONFLICT
	}
	return sitekit.EINTERNAL
}

type deployment struct {
	sitekit.Deployment
	Created int64 `json:"created"`
}

// ListDeployments returns the project's most recent deployments, newest first.
func (c *Client) ListDeployments(ctx context.Context, limit int) ([]*sitekit.Deployment, error) {
	var out struct {
		Deployments []deployment `json:"deployments"`
	}
	err := c.do(ctx, http.MethodGet, "/v6/deployments", func(r *resty.Request) {
		r.SetQueryParam("projectId", c.project)
		if limit > 0 {
			r.SetQueryParam("limit", strconv.Itoa(limit))
		}
		r.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}

	deployments := make([]*sitekit.Deployment, 0, len(out.Deployments))
	for _, d := range out.Deployments {
		dep := d.Deployment
		if d.Created > 0 {
			dep.CreatedAt = time.UnixMilli(d.Created).UTC()
		}
		deployments = append(deployments, &dep)
	}
	return deployments, nil
}

// ListDomains returns the domains attached to the project.
func (c *Client) ListDomains(ctx context.Context) ([]*sitekit.Domain, error) {
	var out struct {
		Domains []*sitekit.Domain `json:"domains"`
	}
	err := c.do(ctx, http.MethodGet, "/v9/projects/{project}/domains", func(r *resty.Request) {
		r.SetPathParam("project", c.project)
		r.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	return out.Domains, nil
}

// AddDomain attaches a domain to the project.
func (c *Client) AddDomain(ctx context.Context, name string) (*sitekit.Domain, error) {
	if name == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "domain name required")
	}
	var out sitekit.Domain
	err := c.do(ctx, http.MethodPost, "/v10/projects/{project}/domains", func(r *resty.Request) {
		r.SetPathParam("project", c.project)
		r.SetBody(map[string]string{"name": name})
		r.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveDomain detaches a domain from the project.
func (c *Client) RemoveDomain(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/v9/projects/{project}/domains/{domain}", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"project": c.project, "domain": name})
	})
}

// ListAliases returns the aliases of the project.
func (c *Client) ListAliases(ctx context.Context) ([]*sitekit.Alias, error) {
	var out struct {
		Aliases []*sitekit.Alias `json:"aliases"`
	}
	err := c.do(ctx, http.MethodGet, "/v4/aliases", func(r *resty.Request) {
		r.SetQueryParam("projectId", c.project)
		r.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	return out.Aliases, nil
}

// SetAlias points alias at a deployment.
func (c *Client) SetAlias(ctx context.Context, deploymentID, alias string) (*sitekit.Alias, error) {
	if deploymentID == "" || alias == "" {
		return nil, sitekit.Errorf(sitekit.EINVALID, "deployment ID and alias required")
	}
	var out sitekit.Alias
	err := c.do(ctx, http.MethodPost, "/v2/deployments/{id}/aliases", func(r *resty.Request) {
		r.SetPathParam("id", deploymentID)
		r.SetBody(map[string]string{"alias": alias})
		r.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	out.DeploymentID = deploymentID
	return &out, nil
}

// ListDNSRecords returns the DNS records of a domain.
func (c *Client) ListDNSRecords(ctx context.Context, domain string) ([]*sitekit.DNSRecord, error) {
	var out struct {
		Records []*sitekit.DNSRecord `json:"records"`
	}
	err := c.do(ctx, http.MethodGet, "/v4/domains/{domain}/records", func(r *resty.Request) {
		r.SetPathParam("domain", domain)
		r.SetResult(&out)
	})
	if err != nil {
		return nil, err
	}
	return out.Records, nil
}

type dnsRecordBody struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	TTL   int    `json:"ttl,omitempty"`
}

// CreateDNSRecord adds a DNS record to a domain and sets its ID.
func (c *Client) CreateDNSRecord(ctx context.Context, domain string, record *sitekit.DNSRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	var out struct {
		UID string `json:"uid"`
	}
	err := c.do(ctx, http.MethodPost, "/v2/domains/{domain}/records", func(r *resty.Request) {
		r.SetPathParam("domain", domain)
		r.SetBody(dnsRecordBody{Name: record.Name, Type: record.Type, Value: record.Value, TTL: record.TTL})
		r.SetResult(&out)
	})
	if err != nil {
		return err
	}
	record.ID = out.UID
	return nil
}

// DeleteDNSRecord removes a DNS record from a domain.
func (c *Client) DeleteDNSRecord(ctx context.Context, domain, recordID string) error {
	return c.do(ctx, http.MethodDelete, "/v2/domains/{domain}/records/{id}", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"domain": domain, "id": recordID})
	})
}

package mock

import (
	"context"

	"github.com/fwojciec/sitekit"
)

var _ sitekit.HostingService = (*HostingService)(nil)

// HostingService is a mock implementation of sitekit.HostingService.
type HostingService struct {
	ListDeploymentsFn func(ctx context.Context, limit int) ([]*sitekit.Deployment, error)
	ListDomainsFn     func(ctx context.Context) ([]*sitekit.Domain, error)
	AddDomainFn       func(ctx context.Context, name string) (*sitekit.Domain, error)
	RemoveDomainFn    func(ctx context.Context, name string) error
	ListAliasesFn     func(ctx context.Context) ([]*sitekit.Alias, error)
	SetAliasFn        func(ctx context.Context, deploymentID, alias string) (*sitekit.Alias, error)
	ListDNSRecordsFn  func(ctx context.Context, domain string) ([]*sitekit.DNSRecord, error)
	CreateDNSRecordFn func(ctx context.Context, domain string, record *sitekit.DNSRecord) error
	DeleteDNSRecordFn func(ctx context.Context, domain, recordID string) error
}

func (s *HostingService) ListDeployments(ctx context.Context, limit int) ([]*sitekit.Deployment, error) {
	return s.ListDeploymentsFn(ctx, limit)
}

func (s *HostingService) ListDomains(ctx context.Context) ([]*sitekit.Domain, error) {
	return s.ListDomainsFn(ctx)
}

func (s *HostingService) AddDomain(ctx context.Context, name string) (*sitekit.Domain, error) {
	return s.AddDomainFn(ctx, name)
}

func (s *HostingService) RemoveDomain(ctx context.Context, name string) error {
	return s.RemoveDomainFn(ctx, name)
}

func (s *HostingService) ListAliases(ctx context.Context) ([]*sitekit.Alias, error) {
	return s.ListAliasesFn(ctx)
}

func (s *HostingService) SetAlias(ctx context.Context, deploymentID, alias string) (*sitekit.Alias, error) {
	return s.SetAliasFn(ctx, deploymentID, alias)
}

func (s *HostingService) ListDNSRecords(ctx context.Context, domain string) ([]*sitekit.DNSRecord, error) {
	return s.ListDNSRecordsFn(ctx, domain)
}

func (s *HostingService) CreateDNSRecord(ctx context.Context, domain string, record *sitekit.DNSRecord) error {
	return s.CreateDNSRecordFn(ctx, domain, record)
}

func (s *HostingService) DeleteDNSRecord(ctx context.Context, domain, recordID string) error {
	return s.DeleteDNSRecordFn(ctx, domain, recordID)
}

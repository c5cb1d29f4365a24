package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitekit"
)

// Ensure LoggingHostingService implements sitekit.HostingService.
var _ sitekit.HostingService = (*LoggingHostingService)(nil)

// LoggingHostingService wraps a HostingService and logs every API call.
type LoggingHostingService struct {
	next   sitekit.HostingService
	logger *slog.Logger
}

// NewLoggingHostingService creates a new LoggingHostingService.
func NewLoggingHostingService(next sitekit.HostingService, logger *slog.Logger) *LoggingHostingService {
	return &LoggingHostingService{next: next, logger: logger}
}

func (s *LoggingHostingService) log(ctx context.Context, op string, begin time.Time, err error, args ...any) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
	}
	args = append(args, "duration", time.Since(begin), "err", err)
	s.logger.Log(ctx, level, op, args...)
}

func (s *LoggingHostingService) ListDeployments(ctx context.Context, limit int) (deployments []*sitekit.Deployment, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "list deployments", begin, err, "limit", limit, "count", len(deployments))
	}(time.Now())
	return s.next.ListDeployments(ctx, limit)
}

func (s *LoggingHostingService) ListDomains(ctx context.Context) (domains []*sitekit.Domain, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "list domains", begin, err, "count", len(domains))
	}(time.Now())
	return s.next.ListDomains(ctx)
}

func (s *LoggingHostingService) AddDomain(ctx context.Context, name string) (domain *sitekit.Domain, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "add domain", begin, err, "domain", name)
	}(time.Now())
	return s.next.AddDomain(ctx, name)
}

func (s *LoggingHostingService) RemoveDomain(ctx context.Context, name string) (err error) {
	defer func(begin time.Time) {
		s.log(ctx, "remove domain", begin, err, "domain", name)
	}(time.Now())
	return s.next.RemoveDomain(ctx, name)
}

func (s *LoggingHostingService) ListAliases(ctx context.Context) (aliases []*sitekit.Alias, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "list aliases", begin, err, "count", len(aliases))
	}(time.Now())
	return s.next.ListAliases(ctx)
}

func (s *LoggingHostingService) SetAlias(ctx context.Context, deploymentID, alias string) (result *sitekit.Alias, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "set alias", begin, err, "deployment", deploymentID, "alias", alias)
	}(time.Now())
	return s.next.SetAlias(ctx, deploymentID, alias)
}

func (s *LoggingHostingService) ListDNSRecords(ctx context.Context, domain string) (records []*sitekit.DNSRecord, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "list dns records", begin, err, "domain", domain, "count", len(records))
	}(time.Now())
	return s.next.ListDNSRecords(ctx, domain)
}

func (s *LoggingHostingService) CreateDNSRecord(ctx context.Context, domain string, record *sitekit.DNSRecord) (err error) {
	defer func(begin time.Time) {
		s.log(ctx, "create dns record", begin, err, "domain", domain, "type", record.Type, "name", record.Name, "id", record.ID)
	}(time.Now())
	return s.next.CreateDNSRecord(ctx, domain, record)
}

func (s *LoggingHostingService) DeleteDNSRecord(ctx context.Context, domain, recordID string) (err error) {
	defer func(begin time.Time) {
		s.log(ctx, "delete dns record", begin, err, "domain", domain, "id", recordID)
	}(time.Now())
	return s.next.DeleteDNSRecord(ctx, domain, recordID)
}

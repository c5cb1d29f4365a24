package mock

import (
	"context"

	"github.com/fwojciec/sitekit"
)

var _ sitekit.AdminService = (*AdminService)(nil)

// AdminService is a mock implementation of sitekit.AdminService.
type AdminService struct {
	CreateAdminFn         func(ctx context.Context, admin *sitekit.Admin, password string) error
	FindAdminByUsernameFn func(ctx context.Context, username string) (*sitekit.Admin, error)
	FindAdminsFn          func(ctx context.Context) ([]*sitekit.Admin, error)
	UpdatePasswordFn      func(ctx context.Context, username, password string) error
	AuthenticateFn        func(ctx context.Context, username, password string) (*sitekit.Admin, error)
	DeleteAdminFn         func(ctx context.Context, username string) error
}

func (s *AdminService) CreateAdmin(ctx context.Context, admin *sitekit.Admin, password string) error {
	return s.CreateAdminFn(ctx, admin, password)
}

func (s *AdminService) FindAdminByUsername(ctx context.Context, username string) (*sitekit.Admin, error) {
	return s.FindAdminByUsernameFn(ctx, username)
}

func (s *AdminService) FindAdmins(ctx context.Context) ([]*sitekit.Admin, error) {
	return s.FindAdminsFn(ctx)
}

func (s *AdminService) UpdatePassword(ctx context.Context, username, password string) error {
	return s.UpdatePasswordFn(ctx, username, password)
}

func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*sitekit.Admin, error) {
	return s.AuthenticateFn(ctx, username, password)
}

func (s *AdminService) DeleteAdmin(ctx context.Context, username string) error {
	return s.DeleteAdminFn(ctx, username)
}

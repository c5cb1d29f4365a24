package main

import (
	"fmt"

	"github.com/fwojciec/sitekit"
)

// Run executes the admin create command.
func (c *AdminCreateCmd) Run(deps *Dependencies) error {
	admin := &sitekit.Admin{Username: c.Username}
	if err := deps.Admins.CreateAdmin(deps.Ctx, admin, c.Password); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Created admin %q (%s)\n", admin.Username, admin.ID)
	return nil
}

// Run executes the admin list command.
func (c *AdminListCmd) Run(deps *Dependencies) error {
	admins, err := deps.Admins.FindAdmins(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}

	if len(admins) == 0 {
		fmt.Fprintln(deps.Stdout, "No admins found. Use 'sitekit admin create' to add one.")
		return nil
	}

	for _, a := range admins {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", a.ID, a.Username, a.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Run executes the admin passwd command.
func (c *AdminPasswdCmd) Run(deps *Dependencies) error {
	if err := deps.Admins.UpdatePassword(deps.Ctx, c.Username, c.Password); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Updated password for %q\n", c.Username)
	return nil
}

// Run executes the admin delete command.
func (c *AdminDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return sitekit.Errorf(sitekit.EINVALID, "use --force to confirm deletion")
	}
	if err := deps.Admins.DeleteAdmin(deps.Ctx, c.Username); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekit.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted admin %q\n", c.Username)
	return nil
}

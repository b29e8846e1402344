package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/user"
)

// createSuperuser updates or creates an Admin account.
func (cli *commandLine) createSuperuser(name, email, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		now := user.NowFunc().UTC()
		usr = user.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			CreatedAt: now,
		}
		usr.Role = access.RoleAdmin
		usr.IsActive = true
		usr.UpdatedAt = now
		if err := usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	}

	usr.Role = access.RoleAdmin
	usr.IsActive = true
	usr.UpdatedAt = user.NowFunc().UTC()
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}

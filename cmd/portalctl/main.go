package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/munidigital/portalctl/cmd/portalctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login     commands.LoginCmd     `cmd:"" help:"Log in to the portal"`
		Logout    commands.LogoutCmd    `cmd:"" help:"Log out and clear the stored session"`
		Whoami    commands.WhoamiCmd    `cmd:"" help:"Show the current session"`
		Users     commands.UsersCmd     `cmd:"" help:"Manage portal users"`
		Terms     commands.TermsCmd     `cmd:"" help:"Terms of service"`
		Taxpayers commands.TaxpayersCmd `cmd:"" help:"Taxpayer registry"`
		Titles    commands.TitlesCmd    `cmd:"" help:"Credit titles"`
		Password  commands.PasswordCmd  `cmd:"" help:"Password recovery"`
		Debug     bool                  `help:"Enable debug mode."`
		Version   kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}

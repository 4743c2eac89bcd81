package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/hrconsole/cmd/hrconsole/internal/commands"
	"github.com/wolfeidau/hrconsole/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login  commands.LoginCmd  `cmd:"" help:"Log in to the HR backend"`
		Logout commands.LogoutCmd `cmd:"" help:"Clear the stored session"`
		Whoami commands.WhoamiCmd `cmd:"" help:"Show the current session"`
		Open   commands.OpenCmd   `cmd:"" help:"Navigate to a view through the access guard"`
		Browse commands.BrowseCmd `cmd:"" help:"Interactive session with inactivity monitoring"`

		Config     string `help:"Path to config file" env:"HRCONSOLE_CONFIG"`
		ServerURL  string `help:"HR backend base URL" env:"HRCONSOLE_SERVER_URL"`
		SessionDir string `help:"Session storage directory" env:"HRCONSOLE_SESSION_DIR"`
		Debug      bool   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{
		Debug:      cli.Debug,
		Version:    version,
		ConfigPath: cli.Config,
		ServerURL:  cli.ServerURL,
		SessionDir: cli.SessionDir,
	})
	cmd.FatalIfErrorf(err)
}

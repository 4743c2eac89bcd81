package commands

import (
	"context"
	"fmt"
)

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := buildApp(globals)
	if err != nil {
		return err
	}

	// Local-only and idempotent; logging out twice is fine.
	app.authn.Logout()
	fmt.Println("Logged out")

	return nil
}

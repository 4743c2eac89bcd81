package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfeidau/hrconsole/internal/access"
	"github.com/wolfeidau/hrconsole/internal/auth"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:"" env:"HRCONSOLE_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := buildApp(globals)
	if err != nil {
		return err
	}

	sess, err := app.authn.Login(ctx, l.Email, l.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errors.New("incorrect email or password")
	case errors.Is(err, auth.ErrConnection):
		return errors.New("could not reach the HR backend, check your connection")
	case err != nil:
		return err
	}

	home := app.router.Navigate(access.HomePath(sess.Role))
	fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Role)
	fmt.Printf("Dashboard: %s\n", home)

	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wolfeidau/hrconsole/internal/access"
	"github.com/wolfeidau/hrconsole/internal/auth"
)

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := buildApp(globals)
	if err != nil {
		return err
	}

	sess, ok := app.store.Load()
	if !ok {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("Name:  %s\n", sess.Name)
	fmt.Printf("Email: %s\n", sess.Email)
	fmt.Printf("Role:  %s\n", sess.Role)
	fmt.Printf("Home:  %s\n", access.HomePath(sess.Role))
	if sess.PhotoURL != "" {
		fmt.Printf("Photo: %s\n", sess.PhotoURL)
	}

	// The token is opaque to us, but when it happens to be a JWT we can show
	// its claims. Display-only; the backend decides validity.
	if info, ok := auth.PeekToken(sess.Token); ok {
		if !info.ExpiresAt.IsZero() {
			fmt.Printf("Token expires: %s\n", info.ExpiresAt.Format(time.RFC3339))
		}
		if info.Issuer != "" {
			fmt.Printf("Token issuer:  %s\n", info.Issuer)
		}
	}

	return nil
}
